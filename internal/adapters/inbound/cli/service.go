package cli

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/scriptorium/scriptorium/internal/adapters/outbound/backup"
	"github.com/scriptorium/scriptorium/internal/adapters/outbound/config"
	"github.com/scriptorium/scriptorium/internal/adapters/outbound/gitinfo"
	"github.com/scriptorium/scriptorium/internal/adapters/outbound/history"
	"github.com/scriptorium/scriptorium/internal/adapters/outbound/logging"
	"github.com/scriptorium/scriptorium/internal/adapters/outbound/scanner"
	"github.com/scriptorium/scriptorium/internal/application"
)

// newService wires the standard adapter set into a StructureService for
// the given project path.
func newService(path, logLevel string) (*application.StructureService, *zap.Logger, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving path: %w", err)
	}

	logger, err := logging.New(absPath, logLevel)
	if err != nil {
		return nil, nil, err
	}

	sc := scanner.New()
	validator := application.NewValidateService(sc, config.New(), logger)
	fixer := application.NewFixService(sc, logger)

	svc, err := application.NewStructureService(
		absPath,
		validator,
		fixer,
		backup.New(),
		gitinfo.New(),
		history.New(),
		logger,
	)
	if err != nil {
		logger.Sync()
		return nil, nil, err
	}
	return svc, logger, nil
}
