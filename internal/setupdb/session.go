package setupdb

// Entry returns the history entry with the given name, or nil.
func (db *SetupDatabase) Entry(name string) *HistoryEntry {
	if db.History == nil {
		return nil
	}
	for i := range db.History.Entries {
		if db.History.Entries[i].Name == name {
			return &db.History.Entries[i]
		}
	}
	return nil
}

// Test returns the named test, or nil.
func (s *Session) Test(name string) *Test {
	for i := range s.Tests.Entries {
		if s.Tests.Entries[i].Name == name {
			return &s.Tests.Entries[i]
		}
	}
	return nil
}

// Var returns the named variable, or nil.
func (s *Session) Var(name string) *Variable {
	for i := range s.Vars.Entries {
		if s.Vars.Entries[i].Name == name {
			return &s.Vars.Entries[i]
		}
	}
	return nil
}

// Corner returns the named corner, or nil.
func (s *Session) Corner(name string) *Corner {
	for i := range s.Corners.Entries {
		if s.Corners.Entries[i].Name == name {
			return &s.Corners.Entries[i]
		}
	}
	return nil
}

// TestNames returns the declared test names in document order.
func (s *Session) TestNames() []string {
	names := make([]string, 0, len(s.Tests.Entries))
	for _, t := range s.Tests.Entries {
		names = append(names, t.Name)
	}
	return names
}

// SetVar updates the named variable's value. It reports whether the
// variable exists; unknown names are not created, since the tool that
// owns this file decides the variable set.
func (s *Session) SetVar(name, value string) bool {
	v := s.Var(name)
	if v == nil {
		return false
	}
	v.Value = value
	return true
}

// SetCornerEnabled toggles the named corner, preserving the boolean
// convention the corner's enabled attribute already uses. It reports
// whether the corner exists.
func (s *Session) SetCornerEnabled(name string, enabled bool) bool {
	c := s.Corner(name)
	if c == nil {
		return false
	}
	c.Enabled = c.Enabled.WithBool(enabled)
	return true
}
