package usecase

// Actor is the resolved request identity. It is threaded explicitly into
// every operation; nothing in the core reads ambient session state.
type Actor struct {
	UserID  uint
	IsAdmin bool
}

// Owns reports whether the actor owns a resource belonging to userID.
func (a Actor) Owns(userID uint) bool {
	return a.UserID == userID
}

// CanManage reports whether the actor may act on a resource owned by
// userID: the owner or an administrator.
func (a Actor) CanManage(userID uint) bool {
	return a.IsAdmin || a.Owns(userID)
}
