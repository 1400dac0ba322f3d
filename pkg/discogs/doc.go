// Package discogs provides a client library for the Discogs database API.
//
// # Overview
//
// This package fetches releases, masters, artists and labels by ID and
// exposes their fields lazily. Nothing is decoded into fixed structs:
// each type is described by a table of fields, and a field is resolved
// against the fetched JSON only when it is read. Nested objects (a
// release's tracklist, an artist's aliases) become entities of their own
// on access, without further requests.
//
// # Installation
//
//	go get github.com/jfmyers9/crates/pkg/discogs
//
// # Quick Start
//
//	client, err := discogs.NewClient(discogs.Config{
//	    Token: "your-personal-access-token",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	artist, err := client.Artist(ctx, 3840)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	name, err := artist.Name()
//	aliases, err := artist.Aliases()
//	for _, a := range aliases {
//	    fmt.Println(a.Name())
//	}
//
// # Fields
//
// Every type shares id, data_quality, images, resource_url and uri. Typed
// accessors cover the common fields; any declared field can be read with
// Entity.Get using its wire name:
//
//	v, err := release.Get("formats")      // raw JSON value
//	tracks, err := release.Objects("tracklist")
//
// A field missing from the payload is an error (*MissingFieldError), never
// a zero value. Discogs omits optional fields freely, so check with
// errors.As or Entity.Has before relying on one.
//
// # Schemas
//
// Types live in a Registry. DefaultRegistry holds the catalog types;
// callers can build their own:
//
//	reg := discogs.NewRegistry()
//	reg.MustRegister("Crate",
//	    discogs.Scalar("name"),
//	    discogs.ObjectList("records", discogs.KindRelease),
//	)
//
// Object-list targets are looked up by name when the field is read, so
// types may refer to themselves or to types registered later.
//
// # Error Handling
//
//	release, err := client.Release(ctx, id)
//	if err != nil {
//	    var nf *discogs.NotFoundError
//	    var fe *discogs.FetchError
//	    switch {
//	    case errors.As(err, &nf):
//	        // no such release
//	    case errors.As(err, &fe) && fe.Temporary():
//	        // 429 or 5xx, retry later
//	    }
//	}
//
// The client never retries and never logs unless a Logger is configured.
//
// # Discogs API Documentation
//
// https://www.discogs.com/developers
package discogs
