package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/lploc94/orbit/cmd/orbitdemo/internal/jobs"
	"github.com/lploc94/orbit/core/connectivity"
	"github.com/lploc94/orbit/core/dispatcher"
	"github.com/lploc94/orbit/core/orchestrator"
	"github.com/lploc94/orbit/core/queue"
)

// buildOrchestrator wires a Dispatcher backed by a YAML-file queue at
// queueFile and an orchestrator around it. connected sets the initial
// state of the ManualProvider driving online/offline behavior.
func (a *App) buildOrchestrator(connected bool, logger *slog.Logger) (*orchestrator.Orchestrator[jobs.AppState], *connectivity.ManualProvider, error) {
	storage, err := queue.NewYAMLFileStorage(a.queueFile)
	if err != nil {
		return nil, nil, fmt.Errorf("open queue file %s: %w", a.queueFile, err)
	}

	provider := connectivity.NewManualProvider(connected)
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	d := dispatcher.New(
		dispatcher.WithConnectivity(provider),
		dispatcher.WithQueue(queue.NewManager(storage, nil)),
		dispatcher.WithLogger(logger),
	)
	if err := jobs.RegisterSendMessage(d); err != nil {
		return nil, nil, fmt.Errorf("register send-message factory: %w", err)
	}

	o := orchestrator.New(jobs.AppState{},
		orchestrator.WithDispatcher[jobs.AppState](d),
		orchestrator.WithLogger[jobs.AppState](logger),
		orchestrator.WithOnEvent(jobs.ApplyEvent),
	)
	return o, provider, nil
}
