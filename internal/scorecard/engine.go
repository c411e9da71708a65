package scorecard

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alessio/shellescape"
)

const (
	reportSchemaVersion = "1.0.0"
	fixedGeneratedAt    = "1970-01-01T00:00:00Z"
)

// Generate aggregates the fixtures and renders the page without writing
// anything.
func Generate(cfg Config) (Page, error) {
	cat, inputs, err := LoadCatalog(cfg)
	if err != nil {
		return Page{Inputs: inputs}, err
	}
	entries, digests, err := BuildContext(firstNonEmpty(cfg.Root, "."), cat)
	inputs = append(inputs, digests...)
	if err != nil {
		return Page{Inputs: inputs}, err
	}
	if cfg.TemplatePath != "" {
		hash, _, readErr := fileSHA256(cfg.TemplatePath)
		inputs = append(inputs, InputDigest{Kind: "template", Path: cfg.TemplatePath, SHA256: hash, ReadOK: readErr == nil})
	}
	html, err := Render(entries, cfg.TemplatePath)
	if err != nil {
		return Page{Libraries: entries, Inputs: inputs}, err
	}
	return Page{HTML: html, Libraries: entries, Inputs: inputs}, nil
}

func Run(cfg Config) (Report, error) {
	if strings.TrimSpace(cfg.OutHTMLPath) == "" {
		cfg.OutHTMLPath = stdoutPath
	}
	if cfg.OutJSONPath != "" {
		if strings.TrimSpace(cfg.ChecksumsPath) == "" {
			cfg.ChecksumsPath = DefaultChecksumsPath(cfg.OutJSONPath)
		}
		if strings.TrimSpace(cfg.RunLogPath) == "" {
			cfg.RunLogPath = DefaultRunLogPath(cfg.OutJSONPath)
		}
	}
	if isStdout(cfg.OutHTMLPath) && cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}

	var log *auditLogger
	if cfg.RunLogPath != "" {
		l, err := newAuditLogger(cfg.RunLogPath)
		if err != nil {
			return Report{}, fmt.Errorf("open run log: %w", err)
		}
		log = l
		defer log.close()
	}
	log.info("run.start", map[string]interface{}{
		"command":        shellescape.QuoteCommand(cfg.Args),
		"root":           cfg.Root,
		"libraries_path": cfg.LibrariesPath,
		"libraries":      append([]string{}, cfg.Libraries...),
		"template":       cfg.TemplatePath,
		"out_html":       cfg.OutHTMLPath,
		"out_json":       cfg.OutJSONPath,
		"checksums":      cfg.ChecksumsPath,
	})

	page, err := Generate(cfg)
	if err != nil {
		var fixtureErr *FixtureError
		switch {
		case errors.As(err, &fixtureErr):
			log.fail("run.aggregate.error", err, map[string]interface{}{
				"library": fixtureErr.Library,
				"fixture": fixtureErr.Fixture,
				"path":    fixtureErr.Path,
				"missing": fixtureErr.Missing,
			})
		case errors.Is(err, ErrRender):
			log.fail("run.render.error", err, nil)
		default:
			log.fail("run.load_inputs.error", err, nil)
		}
		return Report{}, err
	}
	log.info("run.aggregate.ok", map[string]interface{}{
		"library_count": len(page.Libraries),
		"input_count":   len(page.Inputs),
	})
	log.info("run.render.ok", map[string]interface{}{"bytes": len(page.HTML)})

	report := Report{
		SchemaVersion: reportSchemaVersion,
		GeneratedAt:   fixedGeneratedAt,
		RunID:         stableRunID(page.Inputs),
		Inputs:        page.Inputs,
		Overview:      overviewOf(page.Libraries),
		Libraries:     page.Libraries,
	}

	var artifacts []string
	if isStdout(cfg.OutHTMLPath) {
		if _, err := cfg.Stdout.Write(page.HTML); err != nil {
			log.fail("run.report_html.error", err, nil)
			return Report{}, fmt.Errorf("write html: %w", err)
		}
	} else {
		if err := writeReportHTML(cfg.OutHTMLPath, page.HTML); err != nil {
			log.fail("run.report_html.error", err, map[string]interface{}{"path": cfg.OutHTMLPath})
			return Report{}, fmt.Errorf("write html: %w", err)
		}
		artifacts = append(artifacts, cfg.OutHTMLPath)
	}
	if cfg.OutJSONPath != "" {
		if err := writeReportJSON(cfg.OutJSONPath, report); err != nil {
			log.fail("run.report_json.error", err, map[string]interface{}{"path": cfg.OutJSONPath})
			return Report{}, fmt.Errorf("write json: %w", err)
		}
		artifacts = append(artifacts, cfg.OutJSONPath)
	}
	if cfg.ChecksumsPath != "" {
		if len(artifacts) == 0 {
			log.warn("run.checksums.skipped", map[string]interface{}{"reason": "no file artifacts"})
		} else if err := writeArtifactChecksums(cfg.ChecksumsPath, artifacts); err != nil {
			log.fail("run.checksums.error", err, nil)
			return Report{}, err
		}
	}

	PrintScores(cfg.Console, page.Libraries)
	log.info("run.complete", map[string]interface{}{
		"run_id":        report.RunID,
		"library_count": report.Overview.Libraries,
		"primary":       report.Overview.Primary,
		"warning":       report.Overview.Warning,
		"danger":        report.Overview.Danger,
		"artifacts":     artifacts,
	})
	return report, nil
}
