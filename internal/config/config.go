package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used for highlight feeds.
var UserAgent = "Go-Calendar/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Calendar"
	AppID             = "com.github.tartampluch.go-calendar"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagMode         = "mode"
	FlagLocale       = "locale"
	FlagPort         = "port"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescMode     = "Picker granularity: day, week, month, quarter, half-year or year"
	FlagDescLocale   = "Locale used for month names (e.g. en, fr-CA)"
	FlagDescPort     = "Port of the local grid preview endpoint (empty disables it)"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 720
	MainWindowHeight    = 420
	SettingsWindowWidth = 420

	// Grid columns per mode
	LayoutColsDay       = 7
	LayoutColsWeek      = 1
	LayoutColsMonth     = 3
	LayoutColsYearPart  = 2
	LayoutColsYear      = 5
	LayoutColumnsDouble = 2

	// Preference Keys
	PrefLocale     = "locale"
	PrefWeekStart  = "week_start"
	PrefYearWindow = "year_window"
	PrefFeedURL    = "highlight_feed_url"
	PrefServerPort = "server_port"
	PrefMode       = "picker_mode"
	PrefLastRun    = "last_run_version"

	// Header controls
	LabelDoublePrev = "«"
	LabelPrev       = "‹"
	LabelNext       = "›"
	LabelDoubleNext = "»"

	PlaceholderFeedURL = "https://example.com/calendar.ics"
)

// SupportedLanguages defines the list of bundled locales (ISO 639-1).
var SupportedLanguages = []string{"en", "fr", "de"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	// TKeyMonthShortFmt expects the 1-based month number.
	TKeyMonthShortFmt = "month_short_%d"

	TKeyWinTitle    = "win_title"
	TKeyTabSingle   = "tab_single"
	TKeyTabRange    = "tab_range"
	TKeyLblFrom     = "lbl_from"
	TKeyLblTo       = "lbl_to"
	TKeyLblSelected = "lbl_selected"
	TKeyLblNone     = "lbl_none"
	TKeyFirstDay    = "first_day_of_week" // 0 = Sunday, 1 = Monday

	// TKeyWeekdayShortFmt expects a time.Weekday (0 = Sunday).
	TKeyWeekdayShortFmt = "weekday_short_%d"

	TKeyBtnSettings   = "btn_settings"
	TKeyWinSettings   = "win_settings"
	TKeyLblLocale     = "lbl_locale"
	TKeyLblWeekStart  = "lbl_week_start"
	TKeyLblYearWindow = "lbl_year_window"
	TKeyLblMode       = "lbl_mode"
	TKeyLblFeed       = "lbl_feed"
	TKeyLblPort       = "lbl_port"
	TKeyBtnSave       = "btn_save"
	TKeyBtnCancel     = "btn_cancel"
	TKeyLblFooter     = "lbl_footer"
)

// -----------------------------------------------------------------------------
// Calendar Defaults & Labels
// -----------------------------------------------------------------------------

const (
	DefaultYearWindow = 10
	DefaultLocale     = "en"
	DefaultPort       = "18081"
	DefaultMode       = "day"
	DefaultWeekStart  = time.Sunday

	// DoubleStepWindows is the number of year windows a double step moves in year mode.
	DoubleStepWindows = 10

	DaysPerWeek     = 7
	MonthsPerYear   = 12
	MonthsPerQtr    = 3
	MonthsPerHalf   = 6
	QuartersPerYear = 4
	HalvesPerYear   = 2
	MaxYearWindow   = 1000

	LabelWeekFmt     = "W%d"
	LabelQuarterFmt  = "Q%d"
	LabelHalfYearFmt = "H%d"
	HeaderMonthFmt   = "%s %d"
	HeaderWindowFmt  = "%d-%d"
	DateFormatISO    = "2006-01-02"
	RangeSeparator   = " - "
)

// -----------------------------------------------------------------------------
// Highlight Feeds (iCalendar / vCard)
// -----------------------------------------------------------------------------

const (
	FeedBeginICal  = "BEGIN:VCALENDAR"
	FeedBeginVCard = "BEGIN:VCARD"

	// Recurring vCard dates are projected on the current year and its neighbours.
	FeedYearsBack  = 1
	FeedYearsAhead = 1

	// vCard date formats (RFC 6350)
	DateFormatFullBasic = "20060102"
	DateFormatFullT     = "20060102T150405Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteSnapshot       = "GET /" // also matches HEAD
	MinPort             = 1
	MaxPort             = 65535
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrPortRequired    = "server port is required"
	ErrPortNumber      = "server port must be a number"
	ErrPortRange       = "server port must be between 1 and 65535"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrFetcherMissing  = "internal error: network fetcher is not initialized"
	ErrICalParse       = "failed to parse iCalendar stream"
	ErrVCardParse      = "failed to parse vCard stream"
	ErrDateParse       = "unable to parse date"
	ErrSnapshotEncode  = "failed to encode grid snapshot"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrInvalidSettings = "invalid settings"
	ErrUnknownMode     = "unknown calendar mode"
	ErrWeekStart       = "week start must be between 0 (Sunday) and 6 (Saturday)"
	ErrYearWindow      = "year window must be between 1 and 1000"
	ErrLocaleTag       = "malformed locale tag"
	ErrFeedURL         = "highlight feed URL must be http or https"
	ErrFeedFormat      = "unrecognized highlight feed format"
	ErrFeedRead        = "failed to read highlight feed"
	ErrRequest         = "failed to create request"
	ErrNetwork         = "network error during fetch"
	ErrHTTPStatus      = "server returned unexpected status"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Grid initializing, please try again shortly."
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	TitleStartupError = "Startup Error"

	MsgPortBusy        = "Port %s is busy or unavailable."
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgAppStarting     = "Starting application"
	MsgServerListen    = "HTTP server listening"
	MsgServerStop      = "Shutting down HTTP server..."
	MsgSnapshotUpdated = "Grid snapshot updated"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgFeedLoaded      = "Highlight feed loaded"
	MsgFeedFailed      = "Highlight feed could not be loaded"
	MsgSkippedEvent    = "Skipping malformed calendar event"
	MsgSkippedCard     = "Skipping malformed vCard"
	MsgSkippedDate     = "Skipping invalid date format"
	MsgInvalidRef      = "Invalid reference date, falling back"
	MsgInvalidValue    = "Invalid value ignored"
	MsgSelectIgnored   = "Selection ignored"
	MsgModeIgnored     = "Mode switch ignored"
	MsgSideInactive    = "Action on inactive side ignored"
	MsgRangeReordered  = "Range end overwritten to keep order"
	MsgSettingsInvalid = "Invalid settings, using defaults"
	MsgFetchStart      = "Initiating feed download"
	MsgFetchStatus     = "Server returned error status"
	MsgFetchOK         = "Feed downloading"
	MsgSettingsOpen    = "Opening settings window"
	MsgSettingsFocus   = "Settings window already open, requesting focus"
	MsgSettingsSaved   = "Saving preferences"
	MsgHighlightsClear = "Highlight feed cleared"
	MsgSelectionChange = "Selection changed"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyTarget    = "target"
	LogKeySide      = "side"
	LogKeyValue     = "value"
	LogKeyReason    = "reason"
	LogKeyCount     = "count"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyDuration  = "duration_ms"
	LogKeyLength    = "content_length"
	LogKeyFormat    = "format"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyBuilt   = "built"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI        = "ui"
	CompEngine    = "engine"
	CompRange     = "range"
	CompServer    = "server"
	CompFetcher   = "fetcher"
	CompHighlight = "highlight"
	CompMain      = "main"
	CompI18n      = "i18n"
)

// -----------------------------------------------------------------------------
// Selection Outcome Reasons
// -----------------------------------------------------------------------------

const (
	ReasonDisabled    = "disabled"
	ReasonOutOfBounds = "out_of_bounds"
	ReasonInvalid     = "invalid"
	ReasonIllegalMode = "illegal_mode"
)
