package params

const (
	DefaultSpeed  = 1.0
	DefaultOmega  = 0.2
	DefaultCouple = 0.7
)

// Params is the immutable snapshot handed to scenes on each frame.
type Params struct {
	Speed  float64 `yaml:"speed" json:"speed" env:"SPEED" validate:"gte=0.1,lte=3"`
	Omega  float64 `yaml:"omega" json:"omega" env:"OMEGA" validate:"gte=0.05,lte=2"`
	Couple float64 `yaml:"couple" json:"couple" env:"COUPLE" validate:"gte=0,lte=1"`
}

func Default() Params {
	return Params{Speed: DefaultSpeed, Omega: DefaultOmega, Couple: DefaultCouple}
}

// Update is a partial change; nil fields are left alone.
type Update struct {
	Speed  *float64
	Omega  *float64
	Couple *float64
}

func WithSpeed(v float64) Update  { return Update{Speed: &v} }
func WithOmega(v float64) Update  { return Update{Omega: &v} }
func WithCouple(v float64) Update { return Update{Couple: &v} }

// Apply returns p with the non-nil fields of u merged in.
func (u Update) Apply(p Params) Params {
	if u.Speed != nil {
		p.Speed = *u.Speed
	}
	if u.Omega != nil {
		p.Omega = *u.Omega
	}
	if u.Couple != nil {
		p.Couple = *u.Couple
	}
	return p
}

func (u Update) Empty() bool {
	return u.Speed == nil && u.Omega == nil && u.Couple == nil
}

// Field returns the named value, for widgets that address controls by name.
func (p Params) Field(name string) float64 {
	switch name {
	case "speed":
		return p.Speed
	case "omega":
		return p.Omega
	case "couple":
		return p.Couple
	}
	return 0
}

// Set builds an Update for the named field.
func Set(name string, v float64) Update {
	switch name {
	case "speed":
		return WithSpeed(v)
	case "omega":
		return WithOmega(v)
	case "couple":
		return WithCouple(v)
	}
	return Update{}
}
