package rdfgraph

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/rdfgraph/engine/reason"
	"github.com/rdfgraph/engine/store"
	"github.com/rdfgraph/engine/store/badgerkv"
	"github.com/rdfgraph/engine/store/leveldbkv"
	"github.com/rdfgraph/engine/store/memkv"
	"github.com/rdfgraph/engine/store/mmapkv"
	"github.com/rdfgraph/engine/term"
)

// Open builds a Store from cfg, constructing the backend cfg.Backend
// names, wiring the index layer over it, and stratifying the reasoner's
// rule table up front.
func Open(cfg Config) (*Store, error) {
	glog.Infof("rdfgraph: opening backend=%d path=%q", cfg.Backend, cfg.Path)

	var backend store.Backend
	switch cfg.Backend {
	case Memory:
		backend = memkv.New()
	case Badger:
		db, err := badgerkv.Open(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("rdfgraph: open badger: %w", err)
		}
		backend = db
	case LevelDB:
		db, err := leveldbkv.Open(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("rdfgraph: open leveldb: %w", err)
		}
		backend = db
	case Mmap:
		db, err := mmapkv.Open(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("rdfgraph: open mmap: %w", err)
		}
		backend = db
	default:
		return nil, fmt.Errorf("rdfgraph: unknown backend %d", cfg.Backend)
	}

	dict := term.NewDictionary()
	var opts []store.Option
	if len(cfg.EnabledIndexes) > 0 {
		opts = append(opts, store.WithOrderings(cfg.EnabledIndexes...))
	}
	qs, err := store.NewQuadStore(backend, dict, opts...)
	if err != nil {
		return nil, fmt.Errorf("rdfgraph: building quad store: %w", err)
	}

	engine, err := reason.NewEngine(qs, dict, reason.Config{
		Profile:     cfg.Reasoner,
		Limits:      cfg.Limits,
		Concurrency: cfg.Concurrency,
	})
	if err != nil {
		return nil, fmt.Errorf("rdfgraph: building reasoner: %w", err)
	}

	return &Store{
		store:       qs,
		dict:        dict,
		reasoner:    engine,
		concurrency: cfg.Concurrency,
	}, nil
}
