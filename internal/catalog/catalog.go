package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jfmyers9/crates/internal/history"
	"github.com/jfmyers9/crates/pkg/discogs"
	"github.com/rs/zerolog"
)

// Recorder stores lookup history. *history.Store implements it.
type Recorder interface {
	Add(ctx context.Context, e history.Entry) (string, error)
}

// Config holds service configuration
type Config struct {
	Token     string
	UserAgent string
	BaseURL   string
	Fetcher   discogs.Fetcher // Optional, replaces HTTP for tests
}

// Service looks entities up on Discogs and records each lookup
type Service struct {
	client  *discogs.Client
	history Recorder
	logger  zerolog.Logger
}

// New creates a catalog service. history may be nil.
func New(cfg Config, rec Recorder, logger zerolog.Logger) (*Service, error) {
	logger = logger.With().Str("component", "catalog").Logger()

	client, err := discogs.NewClient(discogs.Config{
		Token:     cfg.Token,
		UserAgent: cfg.UserAgent,
		BaseURL:   cfg.BaseURL,
		Fetcher:   cfg.Fetcher,
		Logger:    LogAdapter{logger},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create discogs client: %w", err)
	}

	return &Service{
		client:  client,
		history: rec,
		logger:  logger,
	}, nil
}

// Client returns the underlying Discogs client
func (s *Service) Client() *discogs.Client {
	return s.client
}

// Lookup fetches one entity and records the outcome
func (s *Service) Lookup(ctx context.Context, kind string, id int) (*discogs.Entity, error) {
	entity, err := s.client.Fetch(ctx, kind, id)

	entry := history.Entry{Kind: kind, EntityID: id}
	if prefix, perr := s.client.URLPrefix(kind); perr == nil {
		entry.URL = prefix + strconv.Itoa(id)
	}

	if err != nil {
		entry.Status = statusOf(err)
		entry.Error = err.Error()
		s.logger.Warn().
			Err(err).
			Str("kind", kind).
			Int("id", id).
			Msg("Lookup failed")
	} else {
		entry.Status = 200
		entry.Summary = entity.String()
		s.logger.Debug().
			Str("kind", kind).
			Int("id", id).
			Msg("Lookup succeeded")
	}

	// Invalid requests never reached the API and are not worth keeping
	if entry.URL != "" && !errors.Is(err, discogs.ErrInvalidID) {
		s.record(ctx, entry)
	}

	return entity, err
}

// Get performs a raw passthrough request
func (s *Service) Get(ctx context.Context, rawURL string) (*discogs.Response, error) {
	return s.client.Get(ctx, rawURL)
}

func (s *Service) record(ctx context.Context, e history.Entry) {
	if s.history == nil {
		return
	}
	if _, err := s.history.Add(ctx, e); err != nil {
		// History is best effort
		s.logger.Error().Err(err).Msg("Failed to record lookup")
	}
}

// statusOf extracts the HTTP status from a lookup error, 0 if none
func statusOf(err error) int {
	var nf *discogs.NotFoundError
	var fe *discogs.FetchError
	switch {
	case errors.As(err, &nf):
		return 404
	case errors.As(err, &fe):
		return fe.StatusCode
	default:
		return 0
	}
}

// ParseKind maps a command-line kind ("release", "artists", ...) to a
// registered type name.
func ParseKind(s string) (string, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s") {
	case "release":
		return discogs.KindRelease, nil
	case "master":
		return discogs.KindMaster, nil
	case "artist":
		return discogs.KindArtist, nil
	case "label":
		return discogs.KindLabel, nil
	default:
		return "", fmt.Errorf("unknown kind %q (want release, master, artist or label)", s)
	}
}

// idPrefixes are the letters Discogs puts in front of IDs on the website
var idPrefixes = map[string]string{
	discogs.KindRelease: "r",
	discogs.KindMaster:  "m",
	discogs.KindArtist:  "a",
	discogs.KindLabel:   "l",
}

// ParseID parses a positive Discogs ID of kind. Website codes such as
// "[r249504]" or "a3840" are accepted when the letter matches kind.
func ParseID(kind, s string) (int, error) {
	raw := s
	s = strings.Trim(strings.TrimSpace(s), "[]")
	if prefix := idPrefixes[kind]; prefix != "" {
		s = strings.TrimPrefix(s, prefix)
	}
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", strings.ToLower(kind), raw)
	}
	return id, nil
}

// LogAdapter forwards discogs client debug output to zerolog
type LogAdapter struct {
	Logger zerolog.Logger
}

// Debugf implements discogs.Logger
func (a LogAdapter) Debugf(format string, args ...interface{}) {
	a.Logger.Debug().Msgf(format, args...)
}
