package entity

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Claves reservadas del objeto JSON de un producto/línea.
const (
	keyID     = "id"
	keyAmount = "amount"
	keyTitle  = "title"
	keyPrice  = "price"
	keyImage  = "image"
)

// Product producto tal como lo devuelve GET /products/{id}.
// Attributes guarda todos los campos salvo el id, sin interpretarlos: el carrito solo los
// transporta hasta la UI. Title, Price e Image son lecturas de conveniencia sobre ellos.
type Product struct {
	ID         int
	Attributes map[string]json.RawMessage
}

// NewProduct construye un producto con los atributos de presentación habituales.
func NewProduct(id int, title string, price decimal.Decimal, image string) Product {
	p := Product{ID: id, Attributes: make(map[string]json.RawMessage, 3)}
	p.SetAttribute(keyTitle, title)
	// price viaja como número JSON, igual que en el catálogo.
	p.Attributes[keyPrice] = json.RawMessage(price.String())
	p.SetAttribute(keyImage, image)
	return p
}

// SetAttribute serializa v bajo key. Las claves id y amount se ignoran.
func (p *Product) SetAttribute(key string, v any) {
	if key == keyID || key == keyAmount {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if p.Attributes == nil {
		p.Attributes = make(map[string]json.RawMessage)
	}
	p.Attributes[key] = raw
}

// Title título del producto, vacío si no viene.
func (p Product) Title() string {
	var s string
	if raw, ok := p.Attributes[keyTitle]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}

// Image URL de la imagen, vacía si no viene.
func (p Product) Image() string {
	var s string
	if raw, ok := p.Attributes[keyImage]; ok {
		_ = json.Unmarshal(raw, &s)
	}
	return s
}

// Price precio unitario; acepta número o string JSON. Cero si falta o es inválido.
func (p Product) Price() decimal.Decimal {
	raw, ok := p.Attributes[keyPrice]
	if !ok {
		return decimal.Zero
	}
	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err != nil {
		return decimal.Zero
	}
	return d
}

// MarshalJSON aplana id y atributos en un único objeto.
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.fields())
}

// UnmarshalJSON exige un id entero; el resto de campos se conserva tal cual.
func (p *Product) UnmarshalJSON(data []byte) error {
	fields, err := decodeFields(data)
	if err != nil {
		return err
	}
	id, err := intField(fields, keyID)
	if err != nil {
		return err
	}
	p.setFields(id, fields)
	return nil
}

// DecodeProduct lee la respuesta de GET /products/{id}. El id del cuerpo es opcional:
// manda el de la ruta, que es el que pidió el carrito.
func DecodeProduct(data []byte, id int) (Product, error) {
	fields, err := decodeFields(data)
	if err != nil {
		return Product{}, err
	}
	var p Product
	p.setFields(id, fields)
	return p, nil
}

func decodeFields(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("producto: se esperaba un objeto JSON")
	}
	return fields, nil
}

func (p *Product) setFields(id int, fields map[string]json.RawMessage) {
	delete(fields, keyID)
	delete(fields, keyAmount)
	if len(fields) == 0 {
		fields = nil
	}
	p.ID = id
	p.Attributes = fields
}

func (p Product) fields() map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(p.Attributes)+2)
	for k, v := range p.Attributes {
		out[k] = v
	}
	out[keyID] = json.RawMessage(fmt.Sprintf("%d", p.ID))
	return out
}

func intField(fields map[string]json.RawMessage, key string) (int, error) {
	raw, ok := fields[key]
	if !ok {
		return 0, fmt.Errorf("campo %q requerido", key)
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("campo %q: %w", key, err)
	}
	return n, nil
}
