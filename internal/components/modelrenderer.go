package components

import (
	"portalgun/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type ModelRenderer struct {
	engine.BaseComponent
	Model rl.Model
	Color rl.Color
}

func NewModelRenderer(model rl.Model, color rl.Color) *ModelRenderer {
	return &ModelRenderer{
		Model: model,
		Color: color,
	}
}

func (m *ModelRenderer) SetShader(shader rl.Shader) {
	m.Model.Materials.Shader = shader
	m.Model.Materials.Maps.Color = m.Color
}

// SetTexture binds texture as the diffuse map of the first material.
func (m *ModelRenderer) SetTexture(texture rl.Texture2D) {
	rl.SetMaterialTexture(m.Model.Materials, rl.MapDiffuse, texture)
}

func (m *ModelRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active {
		return
	}

	m.Model.Transform = g.Transform.Matrix()
	rl.DrawModel(m.Model, rl.Vector3Zero(), 1.0, m.Color)
}

func (m *ModelRenderer) Unload() {
	rl.UnloadModel(m.Model)
}
