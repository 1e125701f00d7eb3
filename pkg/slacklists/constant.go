package slacklists

import "time"

const (
	DefaultBaseURL = "https://slack.com/api"

	MethodItemsList     = "slackLists.items.list"
	MethodItemsInfo     = "slackLists.items.info"
	MethodDownloadStart = "slackLists.download.start"
	MethodDownloadGet   = "slackLists.download.get"

	StatusCompleted = "COMPLETED"

	defaultTimeout              = 30 * time.Second
	defaultRetryCount           = 2
	defaultDownloadPollAttempts = 5
	defaultDownloadPollInterval = time.Second
	itemsPageSize               = 100
	maxItemPages                = 50
)
