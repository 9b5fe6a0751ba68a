package filters

// Update is a partial edit of a tab's filter record. Nil fields are left
// untouched.
type Update struct {
	Specialty                *string
	Service                  *string
	Area                     *string
	Insurance                *string
	DoctorSex                *DoctorSex
	NearestToLocation        *bool
	WithAvailableAppointment *bool
	FromDate                 *string
	ToDate                   *string
}

// Merge applies a partial update. Writing FromDate without an explicit
// ToDate clears ToDate, forcing the end date to be re-picked whenever the
// start date changes; the pair is always resolved together so a stale
// partner value can never survive.
func (s *State) Merge(u Update) {
	if u.FromDate != nil {
		s.FromDate = *u.FromDate
		if u.ToDate == nil {
			s.ToDate = ""
		}
	}
	if u.ToDate != nil {
		s.ToDate = *u.ToDate
	}

	if u.Specialty != nil {
		s.Specialty = *u.Specialty
	}
	if u.Service != nil {
		s.Service = *u.Service
	}
	if u.Area != nil {
		s.Area = *u.Area
	}
	if u.Insurance != nil {
		s.Insurance = *u.Insurance
	}
	if u.DoctorSex != nil {
		s.DoctorSex = *u.DoctorSex
	}
	if u.NearestToLocation != nil {
		s.NearestToLocation = *u.NearestToLocation
	}
	if u.WithAvailableAppointment != nil {
		s.WithAvailableAppointment = *u.WithAvailableAppointment
	}
}

// RemoveFilter resets a single field to its default, the operation behind
// removing one active filter chip. Removing the start date also clears the
// end date; removing anything else leaves siblings alone.
func (s *State) RemoveFilter(key string) {
	if !hasKey(s.Category, key) {
		return
	}
	defaults := Defaults(s.Category)
	switch key {
	case ParamFromDate:
		s.FromDate = ""
		s.ToDate = ""
	case ParamToDate:
		s.ToDate = ""
	case ParamSpecialty:
		s.Specialty = defaults.Specialty
	case ParamService:
		s.Service = defaults.Service
	case ParamArea:
		s.Area = defaults.Area
	case ParamInsurance:
		s.Insurance = defaults.Insurance
	case ParamDoctorSex:
		s.DoctorSex = defaults.DoctorSex
	case ParamNearestToLocation:
		s.NearestToLocation = false
	case ParamWithAvailableAppointment:
		s.WithAvailableAppointment = false
	}
}

// Chip is one active (non-default) filter shown to the user.
type Chip struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ActiveChips lists the fields that differ from the tab's defaults. The end
// date only appears once a start date is set, matching how the pair is
// edited.
func (s State) ActiveChips() []Chip {
	var chips []Chip
	add := func(key, value string) {
		if value != "" {
			chips = append(chips, Chip{Key: key, Value: value})
		}
	}
	add(ParamSpecialty, s.Specialty)
	add(ParamService, s.Service)
	add(ParamArea, s.Area)
	add(ParamInsurance, s.Insurance)
	if s.DoctorSex != "" && s.DoctorSex != DoctorSexAll {
		chips = append(chips, Chip{Key: ParamDoctorSex, Value: string(s.DoctorSex)})
	}
	if s.NearestToLocation {
		chips = append(chips, Chip{Key: ParamNearestToLocation, Value: "1"})
	}
	if s.WithAvailableAppointment {
		chips = append(chips, Chip{Key: ParamWithAvailableAppointment, Value: "1"})
	}
	add(ParamFromDate, s.FromDate)
	if s.FromDate != "" {
		add(ParamToDate, s.ToDate)
	}
	return chips
}
