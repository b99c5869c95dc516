package schedule

// Simple schedule is a named cadence only, "manual" or "once".
type Simple struct {
	timing
	frequency Frequency
}

func (s *Simple) isSchedule() {}

func (s *Simple) Kind() Kind {
	return KindSimple
}

func (s *Simple) Frequency() Frequency {
	return s.frequency
}

func (s *Simple) IsManual() bool {
	return s.frequency == FrequencyManual
}

func (s *Simple) String() string {
	return "Schedule: " + s.describe()
}

func (s *Simple) describe() string {
	if s.frequency != FrequencyOnce {
		return "manual"
	}

	out := "once"
	if s.startDate != nil {
		out += " on " + s.startDate.Format("2006-01-02")
	}
	if s.hour != nil {
		out += " at " + clock(*s.hour, valueOr(s.minute, 0))
	}
	return out + timezoneSuffix(s.timezone)
}
