package session

// Session is the authenticated player context injected into the round
// controller at construction. It replaces ambient credential reads: the
// controller never consults global storage for identity.
type Session struct {
	UserID string
	Token  string

	// OnBalance, when set, is invoked with every refreshed balance so
	// outer layers can mirror it without reaching into controller state.
	OnBalance func(balance float64)
}

// LoggedIn reports whether the session carries credentials.
func (s *Session) LoggedIn() bool {
	return s != nil && s.UserID != "" && s.Token != ""
}

// NotifyBalance forwards a refreshed balance to the registered callback.
func (s *Session) NotifyBalance(balance float64) {
	if s != nil && s.OnBalance != nil {
		s.OnBalance(balance)
	}
}
