package discogs

// Registered type names.
const (
	KindRelease = "Release"
	KindMaster  = "Master"
	KindArtist  = "Artist"
	KindLabel   = "Label"
	KindTrack   = "Track"
	KindImage   = "Image"
)

// DefaultRegistry holds the catalog types. It is populated at init and
// must not be modified afterwards.
var DefaultRegistry = newDefaultRegistry()

// BaseFields returns the fields every catalog type shares.
func BaseFields() []Field {
	return []Field{
		Scalar("id"),
		Scalar("data_quality"),
		ObjectList("images", KindImage),
		Scalar("resource_url"),
		Scalar("uri"),
	}
}

func withBase(fields ...Field) []Field {
	return append(BaseFields(), fields...)
}

func newDefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(KindRelease, withBase(
		Scalar("artist"),
		ObjectList("artists", KindArtist),
		Scalar("artists_sort"),
		Scalar("catalog_number"),
		Scalar("community"),
		ObjectList("companies", KindLabel),
		Scalar("country"),
		Scalar("date_added"),
		Scalar("date_changed"),
		Scalar("description"),
		Scalar("estimated_weight"),
		ObjectList("extraartists", KindArtist),
		Scalar("format_quantity"),
		Scalar("format"),
		Scalar("formats"),
		Scalar("genres"),
		Scalar("identifiers"),
		ObjectList("labels", KindLabel),
		Scalar("lowest_price"),
		Scalar("master_id"),
		Scalar("master"),
		Scalar("master_url"),
		Scalar("notes"),
		Scalar("num_for_sale"),
		Scalar("released"),
		Scalar("released_formatted"),
		Scalar("series"),
		Scalar("stats"),
		Scalar("status"),
		Scalar("styles"),
		Scalar("thumb"),
		Scalar("thumbnail"),
		Scalar("title"),
		ObjectList("tracklist", KindTrack),
		Scalar("videos"),
		Scalar("year"),
	)...)

	r.MustRegister(KindMaster, withBase(
		ObjectList("artists", KindArtist),
		Scalar("genres"),
		Scalar("lowest_price"),
		Scalar("main_release"),
		Scalar("main_release_url"),
		Scalar("most_recent_release"),
		Scalar("most_recent_release_url"),
		Scalar("num_for_sale"),
		Scalar("styles"),
		Scalar("title"),
		ObjectList("tracklist", KindTrack),
		Scalar("versions_url"),
		Scalar("videos"),
		Scalar("year"),
	)...)

	r.MustRegister(KindArtist, withBase(
		Scalar("active"),
		Scalar("anv"),
		ObjectList("aliases", KindArtist),
		ObjectList("members", KindArtist),
		ObjectList("groups", KindArtist),
		Scalar("join"),
		Scalar("name"),
		Scalar("namevariations"),
		Scalar("profile"),
		Scalar("realname"),
		Scalar("releases_url"),
		Scalar("role"),
		Scalar("tracks"),
		Scalar("urls"),
	)...)

	r.MustRegister(KindLabel, withBase(
		Scalar("catno"),
		Scalar("contact_info"),
		Scalar("entity_type"),
		Scalar("entity_type_name"),
		Scalar("name"),
		Scalar("parent_label"),
		Scalar("profile"),
		Scalar("releases_url"),
		ObjectList("sublabels", KindLabel),
		Scalar("urls"),
	)...)

	r.MustRegister(KindTrack, withBase(
		Scalar("duration"),
		ObjectList("extraartists", KindArtist),
		Scalar("position"),
		Scalar("title"),
		Scalar("type_"),
	)...)

	r.MustRegister(KindImage, withBase(
		Scalar("type"),
		Scalar("uri150"),
		Scalar("width"),
		Scalar("height"),
	)...)

	return r
}

// Release is a specific pressing or edition.
type Release struct{ *Entity }

// Title returns the release title.
func (r *Release) Title() (string, error) { return r.GetString("title") }

// Year returns the release year.
func (r *Release) Year() (int, error) { return r.GetInt("year") }

// Country returns the country of release.
func (r *Release) Country() (string, error) { return r.GetString("country") }

// Released returns the release date as entered, e.g. "1987-07-27".
func (r *Release) Released() (string, error) { return r.GetString("released") }

// Notes returns the free-text release notes.
func (r *Release) Notes() (string, error) { return r.GetString("notes") }

// Status returns the moderation status, e.g. "Accepted".
func (r *Release) Status() (string, error) { return r.GetString("status") }

// Genres returns the genre names.
func (r *Release) Genres() ([]string, error) { return r.GetStrings("genres") }

// Styles returns the style names.
func (r *Release) Styles() ([]string, error) { return r.GetStrings("styles") }

// MasterID returns the ID of the master this release belongs to.
func (r *Release) MasterID() (int, error) { return r.GetInt("master_id") }

// MasterURL returns the API URL of the master.
func (r *Release) MasterURL() (string, error) { return r.GetString("master_url") }

// ArtistsSort returns the artist credit used for sorting.
func (r *Release) ArtistsSort() (string, error) { return r.GetString("artists_sort") }

// Thumb returns the thumbnail image URL.
func (r *Release) Thumb() (string, error) { return r.GetString("thumb") }

// LowestPrice returns the lowest marketplace price.
func (r *Release) LowestPrice() (float64, error) { return r.GetFloat("lowest_price") }

// NumForSale returns the number of marketplace listings.
func (r *Release) NumForSale() (int, error) { return r.GetInt("num_for_sale") }

// Artists returns the credited artists.
func (r *Release) Artists() ([]*Artist, error) { return wrapAll(r.Entity, "artists", newArtist) }

// ExtraArtists returns the additional credits (producers, engineers, ...).
func (r *Release) ExtraArtists() ([]*Artist, error) { return wrapAll(r.Entity, "extraartists", newArtist) }

// Labels returns the labels with their catalog numbers.
func (r *Release) Labels() ([]*Label, error) { return wrapAll(r.Entity, "labels", newLabel) }

// Companies returns the companies credited on the release.
func (r *Release) Companies() ([]*Label, error) { return wrapAll(r.Entity, "companies", newLabel) }

// Tracklist returns the tracks in order.
func (r *Release) Tracklist() ([]*Track, error) { return wrapAll(r.Entity, "tracklist", newTrack) }

// Master groups the releases of one recording.
type Master struct{ *Entity }

// Title returns the master title.
func (m *Master) Title() (string, error) { return m.GetString("title") }

// Year returns the year of the earliest release.
func (m *Master) Year() (int, error) { return m.GetInt("year") }

// Genres returns the genre names.
func (m *Master) Genres() ([]string, error) { return m.GetStrings("genres") }

// Styles returns the style names.
func (m *Master) Styles() ([]string, error) { return m.GetStrings("styles") }

// MainRelease returns the ID of the main release.
func (m *Master) MainRelease() (int, error) { return m.GetInt("main_release") }

// MainReleaseURL returns the API URL of the main release.
func (m *Master) MainReleaseURL() (string, error) { return m.GetString("main_release_url") }

// MostRecentRelease returns the ID of the most recent release.
func (m *Master) MostRecentRelease() (int, error) { return m.GetInt("most_recent_release") }

// VersionsURL returns the API URL listing every version.
func (m *Master) VersionsURL() (string, error) { return m.GetString("versions_url") }

// NumForSale returns the number of marketplace listings.
func (m *Master) NumForSale() (int, error) { return m.GetInt("num_for_sale") }

// LowestPrice returns the lowest marketplace price.
func (m *Master) LowestPrice() (float64, error) { return m.GetFloat("lowest_price") }

// Artists returns the credited artists.
func (m *Master) Artists() ([]*Artist, error) { return wrapAll(m.Entity, "artists", newArtist) }

// Tracklist returns the tracks in order.
func (m *Master) Tracklist() ([]*Track, error) { return wrapAll(m.Entity, "tracklist", newTrack) }

// Artist is a performer, group or credited contributor. Embedded artist
// references (aliases, members, release credits) carry only a subset of
// the fields.
type Artist struct{ *Entity }

// Name returns the artist name.
func (a *Artist) Name() (string, error) { return a.GetString("name") }

// RealName returns the legal name of the artist.
func (a *Artist) RealName() (string, error) { return a.GetString("realname") }

// Profile returns the biography text.
func (a *Artist) Profile() (string, error) { return a.GetString("profile") }

// Active reports whether a group member is still active.
func (a *Artist) Active() (bool, error) { return a.GetBool("active") }

// ANV returns the artist name variation used on a credit.
func (a *Artist) ANV() (string, error) { return a.GetString("anv") }

// Join returns the join phrase between credited artists, e.g. "&".
func (a *Artist) Join() (string, error) { return a.GetString("join") }

// Role returns the credit role, e.g. "Producer".
func (a *Artist) Role() (string, error) { return a.GetString("role") }

// NameVariations returns alternative spellings of the name.
func (a *Artist) NameVariations() ([]string, error) { return a.GetStrings("namevariations") }

// URLs returns external links.
func (a *Artist) URLs() ([]string, error) { return a.GetStrings("urls") }

// ReleasesURL returns the API URL listing the artist's releases.
func (a *Artist) ReleasesURL() (string, error) { return a.GetString("releases_url") }

// Aliases returns other artist names used by the same person.
func (a *Artist) Aliases() ([]*Artist, error) { return wrapAll(a.Entity, "aliases", newArtist) }

// Members returns the members of a group.
func (a *Artist) Members() ([]*Artist, error) { return wrapAll(a.Entity, "members", newArtist) }

// Groups returns the groups the artist belongs to.
func (a *Artist) Groups() ([]*Artist, error) { return wrapAll(a.Entity, "groups", newArtist) }

// Label is a record label or company credit.
type Label struct{ *Entity }

// Name returns the label name.
func (l *Label) Name() (string, error) { return l.GetString("name") }

// Profile returns the label history text.
func (l *Label) Profile() (string, error) { return l.GetString("profile") }

// ContactInfo returns the contact address.
func (l *Label) ContactInfo() (string, error) { return l.GetString("contact_info") }

// CatNo returns the catalog number on a release credit.
func (l *Label) CatNo() (string, error) { return l.GetString("catno") }

// EntityTypeName returns the company role on a release credit, e.g. "Pressed By".
func (l *Label) EntityTypeName() (string, error) { return l.GetString("entity_type_name") }

// URLs returns external links.
func (l *Label) URLs() ([]string, error) { return l.GetStrings("urls") }

// ReleasesURL returns the API URL listing the label's releases.
func (l *Label) ReleasesURL() (string, error) { return l.GetString("releases_url") }

// Sublabels returns the sublabels.
func (l *Label) Sublabels() ([]*Label, error) { return wrapAll(l.Entity, "sublabels", newLabel) }

// ParentLabel returns the parent label reference, embedded as a plain
// object in the payload.
func (l *Label) ParentLabel() (*Label, error) {
	v, err := l.Get("parent_label")
	if err != nil {
		return nil, err
	}
	p, ok := asPayload(v)
	if !ok {
		return nil, &FieldTypeError{Kind: l.kind, Field: "parent_label", Want: "object", Got: v}
	}
	return newLabel(l.registry.wrap(KindLabel, p)), nil
}

// Track is one entry of a tracklist.
type Track struct{ *Entity }

// Position returns the track position, e.g. "A1".
func (t *Track) Position() (string, error) { return t.GetString("position") }

// Title returns the track title.
func (t *Track) Title() (string, error) { return t.GetString("title") }

// Duration returns the duration as printed, e.g. "3:32".
func (t *Track) Duration() (string, error) { return t.GetString("duration") }

// Type returns the entry type: "track", "heading" or "index".
func (t *Track) Type() (string, error) { return t.GetString("type_") }

// ExtraArtists returns the track-level credits.
func (t *Track) ExtraArtists() ([]*Artist, error) { return wrapAll(t.Entity, "extraartists", newArtist) }

// Image is an image reference attached to any entity.
type Image struct{ *Entity }

// Type returns "primary" or "secondary".
func (i *Image) Type() (string, error) { return i.GetString("type") }

// URI150 returns the 150px thumbnail URL.
func (i *Image) URI150() (string, error) { return i.GetString("uri150") }

// Width returns the width in pixels.
func (i *Image) Width() (int, error) { return i.GetInt("width") }

// Height returns the height in pixels.
func (i *Image) Height() (int, error) { return i.GetInt("height") }

func newArtist(e *Entity) *Artist { return &Artist{e} }
func newLabel(e *Entity) *Label { return &Label{e} }
func newTrack(e *Entity) *Track { return &Track{e} }
