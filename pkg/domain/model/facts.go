package model

// CollectedFacts is the structured record filled in over the course of a
// session. Fields are monotonically filled: a later turn may overwrite a
// value but never clears one, except through an explicit session reset.
type CollectedFacts struct {
	Name           string
	Issue          string `masq:"secret"` // presenting issue, verbatim caller text
	Urgency        int    // 0 = unknown, valid tiers are 3, 6, 8, 10
	Service        string
	Specialty      string
	DatePreference string
	TimePreference string // normalized HH:MM
}

// FactDelta is the output of one extraction pass over a single message.
// Zero values mean "nothing detected for this field"; the caller decides
// how to merge the delta into the session facts.
type FactDelta struct {
	Name           string
	Contact        string
	Urgency        int
	Service        string
	Specialty      string
	DatePreference string
	TimePreference string
	BookingIntent  bool
}

// Empty reports whether the delta carries no detected fact at all
func (d FactDelta) Empty() bool {
	return d.Name == "" &&
		d.Contact == "" &&
		d.Urgency == 0 &&
		d.Service == "" &&
		d.Specialty == "" &&
		d.DatePreference == "" &&
		d.TimePreference == "" &&
		!d.BookingIntent
}

// Apply merges the delta into the facts. A field the delta leaves unset
// keeps its previous value; a re-detected field overwrites it.
func (f *CollectedFacts) Apply(d FactDelta) {
	if d.Name != "" {
		f.Name = d.Name
	}
	if d.Urgency != 0 {
		f.Urgency = d.Urgency
	}
	if d.Service != "" {
		f.Service = d.Service
	}
	if d.Specialty != "" {
		f.Specialty = d.Specialty
	}
	if d.DatePreference != "" {
		f.DatePreference = d.DatePreference
	}
	if d.TimePreference != "" {
		f.TimePreference = d.TimePreference
	}
}
