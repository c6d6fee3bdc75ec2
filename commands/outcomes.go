package commands

import (
	"fmt"

	domainSearch "github.com/kabang/kabang/domains/search"
)

const (
	CodeSyncSuccess = "sync_success"
	CodeSyncError   = "sync_error"

	CodeAddInvalidFormat    = "add_invalid_format"
	CodeAddInvalidURL       = "add_invalid_url"
	CodeAddStoreUnavailable = "add_store_unavailable"
	CodeAddExists           = "add_exists"
	CodeAddStoreError       = "add_store_error"

	CodeMarkInvalidFormat    = "mark_invalid_format"
	CodeMarkInvalidURL       = "mark_invalid_url"
	CodeMarkStoreUnavailable = "mark_store_unavailable"
	CodeMarkStoreError       = "mark_store_error"
	CodeMarkSaved            = "mark_saved"
)

func page(code string, level domainSearch.OutcomeLevel, title, message, hint string) domainSearch.Outcome {
	return domainSearch.Outcome{Code: code, Level: level, Title: title, Message: message, Hint: hint}
}

func syncSuccess(count int) domainSearch.Outcome {
	return page(CodeSyncSuccess, domainSearch.LevelSuccess, "Cache Synced",
		fmt.Sprintf("Loaded %d bangs from the database.", count), "")
}

func syncError() domainSearch.Outcome {
	return page(CodeSyncError, domainSearch.LevelError, "Sync Failed",
		"Could not reload bangs from the database. The current cache was kept.", "Please try again later.")
}

func addInvalidFormat() domainSearch.Outcome {
	return page(CodeAddInvalidFormat, domainSearch.LevelError, "Invalid Format",
		"Usage: !!add <bookmark-name> <url>", "Example: !!add github https://github.com")
}

func addInvalidURL() domainSearch.Outcome {
	return page(CodeAddInvalidURL, domainSearch.LevelError, "Invalid URL",
		"The URL provided is not valid.", "")
}

func addStoreUnavailable() domainSearch.Outcome {
	return page(CodeAddStoreUnavailable, domainSearch.LevelWarning, "Database Unavailable",
		"Cannot add bookmark at this time.", "Please try again later.")
}

func addExists(bang string) domainSearch.Outcome {
	return page(CodeAddExists, domainSearch.LevelWarning, "Already Exists",
		fmt.Sprintf("The bang !%s already exists.", bang), "Try a different name or update it in the dashboard.")
}

func addStoreError() domainSearch.Outcome {
	return page(CodeAddStoreError, domainSearch.LevelError, "Database Error",
		"Unable to create bookmark. The database connection was lost.", "Please try again later.")
}

func markInvalidFormat() domainSearch.Outcome {
	return page(CodeMarkInvalidFormat, domainSearch.LevelError, "Invalid Format",
		`Usage: !!mark "notes" <url>`, `Example: !!mark "meeting notes" https://example.com`)
}

func markInvalidURL() domainSearch.Outcome {
	return page(CodeMarkInvalidURL, domainSearch.LevelError, "Invalid URL",
		"The URL provided is not valid.", "")
}

func markStoreUnavailable() domainSearch.Outcome {
	return page(CodeMarkStoreUnavailable, domainSearch.LevelWarning, "Database Unavailable",
		"Cannot save bookmark at this time.", "Please try again later.")
}

func markStoreError() domainSearch.Outcome {
	return page(CodeMarkStoreError, domainSearch.LevelError, "Database Error",
		"Unable to save bookmark. The database connection was lost.", "Please try again later.")
}

func markSaved(url string) domainSearch.Outcome {
	o := page(CodeMarkSaved, domainSearch.LevelSuccess, "Bookmark Saved!",
		"Redirecting to "+url, "Click the link if you are not redirected automatically.")
	o.Link = url
	return o
}
