package engine

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type countingComponent struct {
	BaseComponent
	started int
	updates int
	draws   int
}

func (c *countingComponent) Start()                   { c.started++ }
func (c *countingComponent) Update(deltaTime float32) { c.updates++ }
func (c *countingComponent) Draw()                    { c.draws++ }

func TestNewGameObject(t *testing.T) {
	obj := NewGameObject("TestObject")

	if obj.Name != "TestObject" {
		t.Errorf("Expected name 'TestObject', got '%s'", obj.Name)
	}

	if obj.UID == 0 {
		t.Error("UID should not be 0")
	}

	if !obj.Active {
		t.Error("New GameObject should be active")
	}

	if obj.Transform.Rotation != rl.QuaternionIdentity() {
		t.Errorf("Expected identity rotation, got %+v", obj.Transform.Rotation)
	}
}

func TestGameObjectUniqueUIDs(t *testing.T) {
	obj1 := NewGameObject("First")
	obj2 := NewGameObject("Second")

	if obj1.UID == obj2.UID {
		t.Error("GameObjects should have unique UIDs")
	}
}

func TestGameObjectHasTag(t *testing.T) {
	obj := NewGameObject("Test")
	obj.Tags = []string{"portal", "mask"}

	if !obj.HasTag("portal") {
		t.Error("HasTag should return true for existing tag")
	}

	if obj.HasTag("player") {
		t.Error("HasTag should return false for non-existent tag")
	}
}

func TestGameObjectLifecycle(t *testing.T) {
	obj := NewGameObject("Test")
	c := &countingComponent{}
	obj.AddComponent(c)

	if c.GetGameObject() != obj {
		t.Fatal("AddComponent should set the owning GameObject")
	}

	obj.Start()
	obj.Start()
	if c.started != 1 {
		t.Errorf("Expected Start once, got %d", c.started)
	}

	obj.Update(0.016)
	obj.Draw()
	obj.Active = false
	obj.Update(0.016)
	obj.Draw()

	if c.updates != 1 || c.draws != 1 {
		t.Errorf("Inactive object should not update or draw: updates=%d draws=%d", c.updates, c.draws)
	}
}

func TestGetComponent(t *testing.T) {
	obj := NewGameObject("Test")
	c := &countingComponent{}
	obj.AddComponent(c)

	if got := GetComponent[*countingComponent](obj); got != c {
		t.Error("GetComponent should find the component by type")
	}
	if got := FindComponent[Drawable](obj); got == nil {
		t.Error("FindComponent should find the component by interface")
	}
}

func TestTransformMatrixTranslates(t *testing.T) {
	tr := Transform{
		Position: rl.Vector3{X: 1, Y: 2, Z: 3},
		Rotation: rl.QuaternionIdentity(),
		Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
	}

	p := rl.Vector3Transform(rl.Vector3Zero(), tr.Matrix())
	if p != (rl.Vector3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Expected origin to map to position, got %+v", p)
	}
}
