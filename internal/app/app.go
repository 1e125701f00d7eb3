// Package app assembles the timeline components from configuration.
package app

import (
	"context"

	"list-timeline/config"
	"list-timeline/internal/list"
	"list-timeline/internal/list/normalizer"
	"list-timeline/internal/list/repository"
	slackRepo "list-timeline/internal/list/repository/slack"
	"list-timeline/internal/list/schema"
	"list-timeline/internal/list/usecase"
	"list-timeline/pkg/datemath"
	"list-timeline/pkg/log"
	"list-timeline/pkg/slacklists"
)

// App is the assembled timeline stack shared by the API server and the CLI.
type App struct {
	Client     *slacklists.Client
	Repo       repository.SourceRepository
	Discoverer schema.Discoverer
	Normalizer *normalizer.Normalizer
	UseCase    list.UseCase
	Dates      *datemath.Parser
}

// Build wires the Slack client, repository, discoverer, normalizer and use case.
func Build(ctx context.Context, cfg *config.Config, l log.Logger) *App {
	dates, err := datemath.NewParser(cfg.Timeline.Timezone)
	if err != nil {
		l.Warnf(ctx, "app: invalid timezone %q, falling back to UTC: %v", cfg.Timeline.Timezone, err)
		dates, _ = datemath.NewParser("UTC")
	}

	client := slacklists.NewClient(slacklists.Config{
		BaseURL:              cfg.Slack.BaseURL,
		Token:                cfg.Slack.UserToken,
		Timeout:              cfg.Slack.Timeout,
		RatePerMinute:        cfg.Slack.RatePerMinute,
		RetryCount:           cfg.Slack.RetryCount,
		DownloadPollAttempts: cfg.Slack.DownloadPollAttempts,
		DownloadPollInterval: cfg.Slack.DownloadPollInterval,
	})
	repo := slackRepo.New(client, l)

	columns := list.ColumnNames{
		Name:      cfg.Columns.Name,
		StartDate: cfg.Columns.StartDate,
		EndDate:   cfg.Columns.EndDate,
		Notes:     cfg.Columns.Notes,
		Category:  cfg.Columns.Category,
	}

	discoverer := schema.New(l, repo, schema.Config{
		Columns:        columns,
		FieldOverrides: cfg.ColumnOverrides(),
		StaticOptions:  cfg.Fields.CategoryOptions,
		OptionPrefix:   cfg.Columns.OptionPrefix,
		IgnoredColumns: cfg.Columns.IgnoredColumns,
	})
	norm := normalizer.New(columns, dates)

	uc := usecase.New(l, repo, discoverer, norm, usecase.Config{
		CacheTTL:     cfg.Cache.TTL,
		CacheSize:    cfg.Cache.Size,
		DefaultTitle: cfg.Timeline.Title,
	})

	return &App{
		Client:     client,
		Repo:       repo,
		Discoverer: discoverer,
		Normalizer: norm,
		UseCase:    uc,
		Dates:      dates,
	}
}
