package cli

import (
	"log/slog"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/adapters/web"
	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/pkg/compiler"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// createEngine initializes an arbor engine from the settings. It also
// returns the configured CSV layout, which is chosen per call.
func createEngine(s Settings, logger *slog.Logger, fetcher ports.Fetcher) (*arbor.Engine, compiler.Layout, error) {
	csvOpts, layout, err := s.Config.CSV.Options()
	if err != nil {
		return nil, "", err
	}
	style, err := domain.ParseStyle(s.Config.Render.Style)
	if err != nil {
		return nil, "", err
	}
	if fetcher == nil {
		fetcher = createFetcher(s.Config.Markup, logger)
	}

	engine := arbor.New(
		arbor.WithLogger(logger),
		arbor.WithFetcher(fetcher),
		arbor.WithRenderStyle(style),
		arbor.WithCSVOptions(append(csvOpts, compiler.WithLogger(logger))...),
		arbor.WithMarkupOptions(compiler.WithComments(s.Config.Markup.Comments)),
		arbor.WithVerify(s.Verify),
	)
	return engine, layout, nil
}

// createFetcher builds the network fetcher from the markup section.
func createFetcher(cfg config.Markup, logger *slog.Logger) *web.Fetcher {
	return web.New(
		web.WithTimeout(cfg.Timeout),
		web.WithUserAgent(cfg.UserAgent),
		web.WithLogger(logger),
	)
}
