// Package datastore loads the advancement and winners tables once and
// serves read-only projections of them.
package datastore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Options tune how a Store loads.
type Options struct {
	// Strict turns validation warnings into a DataLoadError.
	Strict bool
	// ReloadOnChange compares the source fingerprint on every Load and
	// re-reads when it differs.
	ReloadOnChange bool
	Logger         *logrus.Entry
}

// Store memoizes one Dataset per process until Invalidate is called. It is
// constructed once at startup and passed by reference.
type Store struct {
	src  Source
	opts Options
	log  *logrus.Entry

	mu      sync.Mutex
	dataset *Dataset
	reads   int
	// Fingerprint of the last source state that failed to load.
	failedFingerprint string
}

func NewStore(src Source, opts Options) *Store {
	log := opts.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Store{
		src:  src,
		opts: opts,
		log:  log.WithField("component", "datastore"),
	}
}

// Source returns the underlying source.
func (s *Store) Source() Source { return s.src }

// Load returns the cached dataset, reading the source on first use or after
// Invalidate. With ReloadOnChange a changed source is re-read; when that read
// fails the previous dataset is served until the source changes again.
func (s *Store) Load(ctx context.Context) (*Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dataset == nil {
		ds, err := s.read(ctx)
		if err != nil {
			return nil, err
		}
		s.dataset = ds
		return ds, nil
	}
	if !s.opts.ReloadOnChange {
		return s.dataset, nil
	}

	fp, fpErr := s.src.Fingerprint()
	if fpErr == nil && (fp == s.dataset.Fingerprint || fp == s.failedFingerprint) {
		return s.dataset, nil
	}
	log := s.log.WithField("source", s.src.String())
	log.Info("source changed, reloading")
	ds, err := s.read(ctx)
	if err != nil {
		if ctx.Err() == nil && fpErr == nil {
			s.failedFingerprint = fp
		}
		log.WithError(err).Warn("⚠️ Reload failed, serving the previous dataset")
		return s.dataset, nil
	}
	s.dataset = ds
	s.failedFingerprint = ""
	return ds, nil
}

// Invalidate drops the cached dataset so the next Load re-reads storage.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.dataset = nil
	s.failedFingerprint = ""
	s.mu.Unlock()
	s.log.Debug("cache invalidated")
}

// Reload is Invalidate followed by Load.
func (s *Store) Reload(ctx context.Context) (*Dataset, error) {
	s.Invalidate()
	return s.Load(ctx)
}

// Reads reports how many times the source has been read.
func (s *Store) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

func (s *Store) read(ctx context.Context) (*Dataset, error) {
	start := time.Now()
	s.reads++

	// Taken before reading so a write during the read triggers another reload.
	fp, err := s.src.Fingerprint()
	if err != nil {
		s.log.WithError(err).Debug("no fingerprint")
	}

	advFrame, err := s.src.Read(ctx, AdvancementInput)
	if err != nil {
		return nil, err
	}
	adv, err := parseAdvancement(s.src.String()+"/"+AdvancementInput.String(), advFrame)
	if err != nil {
		return nil, err
	}

	winFrame, err := s.src.Read(ctx, WinnersInput)
	if err != nil {
		return nil, err
	}
	win, err := parseWinners(s.src.String()+"/"+WinnersInput.String(), winFrame)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		Advancement: adv,
		Winners:     win,
		LoadedAt:    time.Now(),
		Fingerprint: fp,
	}

	report := ds.Validate()
	if !report.OK() {
		if s.opts.Strict {
			return nil, loadErr(s.src.String(), fmt.Sprintf("%d validation issues", len(report.Issues)), report.Err())
		}
		for _, issue := range report.Issues {
			s.log.WithFields(logrus.Fields{
				"kind":  issue.Kind,
				"team":  issue.Team,
				"round": issue.Round,
			}).Warn(issue.Message)
		}
	}

	s.log.WithFields(logrus.Fields{
		"source":   s.src.String(),
		"teams":    adv.Len(),
		"rounds":   len(adv.rounds),
		"games":    win.Len(),
		"duration": time.Since(start).String(),
	}).Info("dataset loaded")
	return ds, nil
}
