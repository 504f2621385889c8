package component

// ReloadRequest is a marker component that asks the game loop to rebuild the
// world from prefabs and the current level.
type ReloadRequest struct{}

var ReloadRequestComponent = NewComponent[ReloadRequest]()
