package api

import (
	"fmt"

	"github.com/JaimeStill/courier/internal/audit"
	"github.com/JaimeStill/courier/internal/classify"
	"github.com/JaimeStill/courier/internal/config"
	"github.com/JaimeStill/courier/internal/extract"
	"github.com/JaimeStill/courier/internal/intake"
	"github.com/JaimeStill/courier/internal/oracle"
	"github.com/JaimeStill/courier/internal/pipeline"
	"github.com/JaimeStill/courier/internal/validate"
)

// Domain holds the systems that comprise the API: the audit log and the
// processing pipeline with its intake handler.
type Domain struct {
	Audit    audit.System
	Pipeline *pipeline.Pipeline
	Intake   *intake.Handler
}

// NewDomain creates all domain systems from the API runtime. A disabled
// oracle leaves classification to the deterministic heuristics.
func NewDomain(cfg *config.Config, rt *Runtime) (*Domain, error) {
	auditSystem := audit.New(rt.Database.Connection(), rt.Logger, rt.Pagination)

	var classifierOracle classify.Oracle
	var intents pipeline.IntentOracle

	if cfg.Oracle.Enabled {
		adapter, err := oracle.New(&cfg.Oracle, rt.Logger)
		if err != nil {
			return nil, fmt.Errorf("oracle init failed: %w", err)
		}
		classifierOracle = adapter
		intents = adapter
	}

	p := pipeline.New(
		classify.New(classifierOracle, rt.Logger),
		intents,
		extract.NewPDFExtractor(rt.Logger),
		validate.NewRegistry(),
		auditSystem,
		rt.Logger,
	)

	return &Domain{
		Audit:    auditSystem,
		Pipeline: p,
		Intake:   intake.NewHandler(p, rt.Storage, rt.Logger, cfg.API.MaxUploadSizeBytes()),
	}, nil
}
