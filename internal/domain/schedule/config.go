package schedule

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// Weekday is an ISO weekday. The zero value means "not configured".
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = map[Weekday]string{
	Monday:    "monday",
	Tuesday:   "tuesday",
	Wednesday: "wednesday",
	Thursday:  "thursday",
	Friday:    "friday",
	Saturday:  "saturday",
	Sunday:    "sunday",
}

func ParseWeekday(raw string) (Weekday, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for day, name := range weekdayNames {
		if name == value {
			return day, nil
		}
	}
	return 0, crerr.Newf("invalid match day %q: must be one of monday..sunday", raw)
}

func (d Weekday) String() string {
	if name, ok := weekdayNames[d]; ok {
		return name
	}
	return ""
}

func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// TimeWeekday converts to the standard library representation.
func (d Weekday) TimeWeekday() time.Weekday {
	return time.Weekday(int(d) % 7)
}

func (d Weekday) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Weekday) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		*d = 0
		return nil
	}
	parsed, err := ParseWeekday(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimeOfDay is a wall clock time. The zero value means "not configured",
// which keeps midnight distinguishable from a missing field.
type TimeOfDay struct {
	offset time.Duration
	set    bool
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, crerr.Newf("invalid time of day %02d:%02d", hour, minute)
	}
	return TimeOfDay{
		offset: time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute,
		set:    true,
	}, nil
}

// MustTimeOfDay panics on invalid input. Intended for tests and literals.
func MustTimeOfDay(raw string) TimeOfDay {
	t, err := ParseTimeOfDay(raw)
	if err != nil {
		panic(err)
	}
	return t
}

func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TimeOfDay{}, crerr.New("time is required")
	}

	for _, layout := range []string{"15:04:05", "15:04", "3:04 PM", "3:04PM"} {
		parsed, err := time.Parse(layout, strings.ToUpper(raw))
		if err != nil {
			continue
		}
		offset := time.Duration(parsed.Hour())*time.Hour +
			time.Duration(parsed.Minute())*time.Minute +
			time.Duration(parsed.Second())*time.Second
		return TimeOfDay{offset: offset, set: true}, nil
	}

	return TimeOfDay{}, crerr.Newf("invalid time %q: must be HH:MM or HH:MM:SS", raw)
}

func (t TimeOfDay) IsSet() bool {
	return t.set
}

// Offset is the duration since midnight.
func (t TimeOfDay) Offset() time.Duration {
	return t.offset
}

func (t TimeOfDay) String() string {
	if !t.set {
		return ""
	}
	total := int(t.offset / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// On returns the instant this time of day falls on the given date.
func (t TimeOfDay) On(date time.Time) time.Time {
	return truncateDate(date).Add(t.offset)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		*t = TimeOfDay{}
		return nil
	}
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Config stores the per-season scheduling parameters. All fields are required;
// nothing here is defaulted.
type Config struct {
	MatchDay                Weekday   `validate:"required,min=1,max=7"`
	StartTime               TimeOfDay `validate:"-"`
	EndTime                 TimeOfDay `validate:"-"`
	VenuesAvailable         int       `validate:"required,gt=0"`
	SlotsPerVenue           int       `validate:"required,gt=0"`
	RestWeeksBetweenMatches int       `validate:"gte=0"`
}

func (c Config) CapacityPerMatchday() int {
	return c.VenuesAvailable * c.SlotsPerVenue
}

// SlotLength is the share of the match window one venue-slot occupies.
func (c Config) SlotLength() time.Duration {
	if c.SlotsPerVenue <= 0 {
		return 0
	}
	return (c.EndTime.Offset() - c.StartTime.Offset()) / time.Duration(c.SlotsPerVenue)
}

func (c Config) Validate() error {
	var violations []Violation
	violations = append(violations, structViolations(c)...)

	if !c.StartTime.IsSet() {
		violations = append(violations, Violation{Field: "StartTime", Rule: "required", Message: "match start time is required"})
	}
	if !c.EndTime.IsSet() {
		violations = append(violations, Violation{Field: "EndTime", Rule: "required", Message: "match end time is required"})
	}
	if c.StartTime.IsSet() && c.EndTime.IsSet() && c.EndTime.Offset() <= c.StartTime.Offset() {
		violations = append(violations, Violation{Field: "EndTime", Rule: "gtfield", Message: "match end time must be after start time"})
	}

	return newConfigError(violations)
}

// Window bounds the dates a season may use.
type Window struct {
	StartDate time.Time
	EndDate   time.Time
}

func (w Window) Validate() error {
	var violations []Violation
	if w.StartDate.IsZero() {
		violations = append(violations, Violation{Field: "StartDate", Rule: "required", Message: "season start date is required"})
	}
	if w.EndDate.IsZero() {
		violations = append(violations, Violation{Field: "EndDate", Rule: "required", Message: "season end date is required"})
	}
	if len(violations) == 0 && truncateDate(w.EndDate).Before(truncateDate(w.StartDate)) {
		violations = append(violations, Violation{Field: "EndDate", Rule: "gtefield", Message: "season end date must be on or after start date"})
	}
	return newConfigError(violations)
}

// MatchdayDates lists every date in the window that falls on day, ascending.
func (w Window) MatchdayDates(day Weekday) []time.Time {
	if !day.Valid() || w.StartDate.IsZero() || w.EndDate.IsZero() {
		return nil
	}

	start := truncateDate(w.StartDate)
	end := truncateDate(w.EndDate)
	target := day.TimeWeekday()

	current := start
	for current.Weekday() != target && !current.After(end) {
		current = current.AddDate(0, 0, 1)
	}

	var dates []time.Time
	for ; !current.After(end); current = current.AddDate(0, 0, 7) {
		dates = append(dates, current)
	}
	return dates
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

func structViolations(c Config) []Violation {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return []Violation{{Field: "Config", Rule: "invalid", Message: err.Error()}}
	}

	out := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, Violation{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: violationMessage(fe),
		})
	}
	return out
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "MatchDay":
		return "match day must be one of monday..sunday"
	case "VenuesAvailable":
		return "venues available must be a positive number"
	case "SlotsPerVenue":
		return "slots per venue must be a positive number"
	case "RestWeeksBetweenMatches":
		return "rest weeks between matches must be a non-negative number"
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

func truncateDate(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}
