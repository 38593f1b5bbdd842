package field

// IsGeneric reports whether the field declares qualifier positions.
func (f *Field) IsGeneric() bool {
	_, ok := f.def.Generic()
	return ok
}

// Qualifier returns the qualifier of a generic field (":SETT//...").
func (f *Field) Qualifier() (string, bool) {
	g, ok := f.def.Generic()
	if !ok {
		return "", false
	}
	return f.at(g.Qualifier)
}

// DSS returns the data source scheme of a generic field.
func (f *Field) DSS() (string, bool) {
	g, ok := f.def.Generic()
	if !ok {
		return "", false
	}
	return f.at(g.DSS)
}

// IsDSSPresent reports whether the data source scheme is set.
func (f *Field) IsDSSPresent() bool {
	_, ok := f.DSS()
	return ok
}

// ConditionalQualifier returns the component that refines the qualifier,
// such as the indicator of 22F.
func (f *Field) ConditionalQualifier() (string, bool) {
	g, ok := f.def.Generic()
	if !ok {
		return "", false
	}
	return f.at(g.ConditionalQualifier)
}

func (f *Field) at(n int) (string, bool) {
	if n < 1 || n > len(f.comps) {
		return "", false
	}
	return f.Component(n)
}
