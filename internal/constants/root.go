package constants

import "time"

// NotificationKind identifies one of the daily notification families
type NotificationKind string

// TaskCategory represents the category of a task
type TaskCategory string

// TaskStatus represents the completion state of a task
type TaskStatus string

// TaskSource represents how a task entered the system
type TaskSource string

// QuoteKind distinguishes morning and evening quotes
type QuoteKind string

const (
	AppName            = "foyer"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/foyer/foyer.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Notification kinds. The kind is the first segment of every
	// scheduled-notification identifier (kind-date[-taskID]).
	KindMorning      NotificationKind = "morning"
	KindDayBefore    NotificationKind = "daybefore"
	KindEvening      NotificationKind = "evening"
	KindOverdue      NotificationKind = "overdue"
	KindOverdueMore  NotificationKind = "overdue-summary"
	KindRainChildren NotificationKind = "rain-children"
	KindWeekend      NotificationKind = "weekend"
	KindUrgent       NotificationKind = "urgent"
	KindNearDeadline NotificationKind = "near-deadline"

	// Daily trigger clock times, local wall clock (HH:MM)
	MorningTriggerTime      = "07:30"
	DayBeforeTriggerTime    = "18:00"
	EveningTriggerTime      = "19:00"
	OverdueTriggerTime      = "09:00"
	RainChildrenTriggerTime = "07:45"
	WeekendTriggerTime      = "09:30" // Saturdays only

	// MinScheduleDelaySec is the floor applied to every computed delay.
	// A past or zero delay is clamped, never rejected.
	MinScheduleDelaySec = 1

	// ImmediateDelaySec is used by the one-off urgent/near-deadline triggers.
	ImmediateDelaySec = 1

	// Content caps
	MaxListedTasks       = 3
	MaxOverdueNotifs     = 5
	MaxWeekendTasks      = 3
	UrgentWindowDays     = 2
	WeekendMinLeadDays   = 2 // deadline must be further out than now+2d
	WeekendNoRushDays    = 3 // and further out than now+3d when a deadline exists
	NearDeadlineDays     = 1

	// Action identifiers registered with the notification category.
	// Matching in the action handler is exact first, substring second
	// (some platforms decorate identifiers with app-specific prefixes).
	ActionDeleteTask    = "DELETE_TASK"
	ActionDelayOneDay   = "DELAY_TASK_1D"
	ActionDelayThreeDay = "DELAY_TASK_3D"

	// PlainTapIdentifier is the platform sentinel for a tap on the
	// notification body rather than on an action button.
	PlainTapIdentifier = "NOTIFICATION_DEFAULT_ACTION"

	// TaskActionsCategory is the named button category registered once
	// at process start and attached to task-bearing notifications.
	TaskActionsCategory = "task-actions"

	// Deep-link routes
	RouteTasks      = "tasks"
	RouteTaskDetail = "taskDetail"

	// Task categories
	CategorySchool     TaskCategory = "school"
	CategoryHealth     TaskCategory = "health"
	CategoryAdmin      TaskCategory = "admin"
	CategoryActivities TaskCategory = "activities"
	CategoryHome       TaskCategory = "home"
	CategoryOther      TaskCategory = "other"

	// Task statuses
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"

	// Task sources
	SourceManual  TaskSource = "manual"
	SourceEmail   TaskSource = "email"
	SourceProfile TaskSource = "profile"
	SourcePhoto   TaskSource = "photo"

	// Quote kinds
	QuoteMorning QuoteKind = "morning"
	QuoteEvening QuoteKind = "evening"

	// Notifier constants
	NotifierLockfileName   = "foyer-notifier.lock"
	NotificationDurationMs = 8000
	TrayAppIdentifier      = "com.foyerapp.foyer"
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
)

// DefaultNotificationSettings values applied on first init
const (
	DefaultMorningEnabled   = true
	DefaultDayBeforeEnabled = true
	DefaultEveningEnabled   = false
	DefaultOverdueEnabled   = true
	DefaultSmartEnabled     = true
	DefaultCity             = "Paris"
	DefaultTimezone         = "Local"
)
