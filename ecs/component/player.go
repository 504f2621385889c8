package component

// Player records which prefab an entity was built from so it can be rebuilt
// when the prefab changes on disk.
type Player struct {
	Prefab string
	Debug  bool
}

var PlayerComponent = NewComponent[Player]()
