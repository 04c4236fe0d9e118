// Package service contains the business logic layer of the application.
//
// THE LAYERING:
//
//	Front end (cmd/trainbook)  → parses commands, prints results
//	Service (this package)     → validates, enforces rules, orchestrates
//	Repository (jsonfile)      → reads/writes the record files
//
// Services accept primitives and model types, never terminal or file
// concerns, so the same code can be driven by the REPL, a test, or any
// future front end.
//
// DEPENDENCY INJECTION:
// Each service takes its storage as a repository.Collection (interface),
// not a concrete *jsonfile.Store. Tests inject an in-memory mock; main
// injects the file-backed store. Neither service knows the difference.
package service

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/train-booking/internal/apperror"
	"github.com/sakif/train-booking/internal/model"
	"github.com/sakif/train-booking/internal/repository"
)

// CatalogService owns the collection of Train records.
//
// The collection is loaded once at construction and held in memory; every
// durable mutation rewrites the whole stored collection. Exactly one
// CatalogService instance should own a given trains file at a time — there
// is no cross-process locking (see the concurrency note on package
// repository).
type CatalogService struct {
	store  repository.Collection[model.Train]
	trains []model.Train
	logger *slog.Logger
}

// NewCatalogService loads the train collection and returns a catalog over it.
//
// A load failure is fatal to construction: a catalog with no backing
// collection can't do anything useful, so the error surfaces immediately
// instead of deferring to the first operation.
func NewCatalogService(store repository.Collection[model.Train], logger *slog.Logger) (*CatalogService, error) {
	trains, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading train catalog: %w", err)
	}
	return &CatalogService{
		store:  store,
		trains: trains,
		logger: logger,
	}, nil
}

// AddOrUpdate inserts a train or replaces the existing one with the same ID.
//
// The ID match is case-insensitive. A replaced train keeps its original
// position in the catalog; a new train is appended. Either way the full
// collection is persisted before returning.
//
// STATION NORMALIZATION:
// Station names (and the arrival-time keys that mirror them) are lower-cased
// here, at write time. Search lower-cases its query terms, so applying the
// same normalization on the write path keeps lookups consistent no matter
// how the operator cased the input.
func (s *CatalogService) AddOrUpdate(train model.Train) error {
	if strings.TrimSpace(train.ID) == "" {
		return apperror.ValidationFailed("id", "train ID is required")
	}

	// Clone before storing: the caller keeps its own copy, and the catalog
	// must not end up aliasing slices the caller can still mutate.
	train = train.Clone()
	normalizeStations(&train)

	replaced := false
	for i := range s.trains {
		if strings.EqualFold(s.trains[i].ID, train.ID) {
			s.trains[i] = train
			replaced = true
			break
		}
	}
	if !replaced {
		s.trains = append(s.trains, train)
	}

	if err := s.persist(); err != nil {
		return err
	}

	s.logger.Info("train saved",
		slog.String("id", train.ID),
		slog.String("number", train.Number),
		slog.Bool("replaced", replaced),
	)
	return nil
}

// FindByNumber returns the first train whose number matches exactly.
// Returns apperror.ErrNotFound if no train has that number.
//
// The returned train is a copy — callers are free to mutate it (booking
// flips a seat cell) and hand it back through AddOrUpdate.
func (s *CatalogService) FindByNumber(number string) (*model.Train, error) {
	for i := range s.trains {
		if s.trains[i].Number == number {
			cp := s.trains[i].Clone()
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("train", number)
}

// Search returns every train that travels from source to destination, in
// catalog order.
//
// A train matches iff both stations appear on its route AND source comes
// strictly before destination — a train running the opposite direction does
// not match, and neither does source == destination. No sorting (by time or
// anything else) is applied on top of catalog order.
func (s *CatalogService) Search(source, destination string) []model.Train {
	source = strings.ToLower(strings.TrimSpace(source))
	destination = strings.ToLower(strings.TrimSpace(destination))

	var matches []model.Train
	for i := range s.trains {
		src := stationIndex(s.trains[i].Stations, source)
		dst := stationIndex(s.trains[i].Stations, destination)
		if src >= 0 && dst >= 0 && src < dst {
			matches = append(matches, s.trains[i].Clone())
		}
	}
	return matches
}

// persist rewrites the whole stored collection from the in-memory one.
func (s *CatalogService) persist() error {
	if err := s.store.Save(s.trains); err != nil {
		s.logger.Error("failed to persist train catalog",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("persisting train catalog: %w", err)
	}
	return nil
}

// normalizeStations lower-cases the station list and the arrival-time keys.
func normalizeStations(train *model.Train) {
	for i, st := range train.Stations {
		train.Stations[i] = strings.ToLower(strings.TrimSpace(st))
	}
	if train.StationArrivalTimes != nil {
		times := make(map[string]string, len(train.StationArrivalTimes))
		for st, at := range train.StationArrivalTimes {
			times[strings.ToLower(strings.TrimSpace(st))] = at
		}
		train.StationArrivalTimes = times
	}
}

// stationIndex returns the position of name in stations, or -1.
func stationIndex(stations []string, name string) int {
	for i, st := range stations {
		if st == name {
			return i
		}
	}
	return -1
}
