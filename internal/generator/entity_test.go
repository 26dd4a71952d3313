package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/jdlgen/internal/openapi"
	"github.com/tordrt/jdlgen/internal/schema"
)

const salesSpec = `
openapi: 3.0.3
info: {title: Sales, version: "1"}
paths: {}
components:
  schemas:
    Order:
      type: object
      description: A sales order
      x-package-name: sales
      required: [number, state]
      properties:
        order-ref:
          type: string
        tags:
          type: array
          items:
            type: string
        downstream_id:
          type: string
        number:
          type: string
          x-unique: true
        state:
          type: string
          description: Order state
          enum: [new, shipped]
        status:
          $ref: '#/components/schemas/Status'
        email:
          $ref: '#/components/schemas/Email'
        customer:
          $ref: '#/components/schemas/Customer'
        lines:
          type: array
          items:
            $ref: '#/components/schemas/OrderLine'
          x-parent-field-name: order
        labels:
          type: array
          items:
            $ref: '#/components/schemas/Label'
          x-entity-relationship: many-to-many
        codes:
          type: array
          items:
            $ref: '#/components/schemas/Status'
        owner:
          allOf:
            - $ref: '#/components/schemas/Person'
            - x-entity-relationship: one-to-one
              x-required: true
        metadata:
          type: object
          properties:
            key:
              type: string
        tracking_id:
          type: string
          x-entity-ref: '#/components/schemas/Shipment'
          x-entity-relationship: one-to-one
      allOf:
        - $ref: '#/components/schemas/Auditable'
        - type: object
          properties:
            number:
              type: integer
            note:
              type: string
    Auditable:
      type: object
      properties:
        created_at:
          type: string
          format: date-time
        number:
          type: integer
    Status:
      type: string
      enum: [open, closed]
    Email:
      type: string
      description: Contact email
      maxLength: 120
    Customer:
      type: object
      properties:
        name:
          type: string
    OrderLine:
      type: object
      properties:
        quantity:
          type: integer
    Label:
      type: object
      properties:
        text:
          type: string
    Person:
      type: object
      properties:
        name:
          type: string
`

func loadTestDocument(t *testing.T, spec string) *schema.Document {
	t.Helper()
	doc, err := openapi.LoadData(context.Background(), []byte(spec))
	require.NoError(t, err)
	return doc
}

func fieldDeclarations(e *schema.Entity) map[string]string {
	decls := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		decls[f.Name] = f.Declaration()
	}
	return decls
}

func relationshipLines(e *schema.Entity, kind schema.RelationshipKind) []string {
	var lines []string
	for _, r := range e.RelationshipsOf(kind) {
		lines = append(lines, r.String())
	}
	return lines
}

func TestGenerateEntity(t *testing.T) {
	doc := loadTestDocument(t, salesSpec)
	def, ok := doc.Lookup("Order")
	require.True(t, ok)

	entity := New(doc, Options{}).GenerateEntity(def)

	assert.Equal(t, "Order", entity.Name)
	assert.Equal(t, "A sales order", entity.Description)
	assert.Equal(t, "sales", entity.Package)

	t.Run("fields", func(t *testing.T) {
		var names []string
		for _, f := range entity.Fields {
			names = append(names, f.Name)
		}
		assert.Equal(t, []string{"uuid", "number", "state", "status", "email", "createdAt", "note"}, names)

		id := entity.Fields[0]
		assert.Equal(t, []string{"@Id"}, id.Annotations)
		assert.Equal(t, "String", id.Declaration())

		decls := fieldDeclarations(entity)
		assert.Equal(t, "String required unique", decls["number"], "own property wins over inherited")
		assert.Equal(t, "OrderState", decls["state"], "enum fields carry no validation tokens")
		assert.Equal(t, "Status", decls["status"])
		assert.Equal(t, "String maxlength(120)", decls["email"])
		assert.Equal(t, "ZonedDateTime", decls["createdAt"])
		assert.Equal(t, "String", decls["note"])
	})

	t.Run("alias field carries alias description", func(t *testing.T) {
		for _, f := range entity.Fields {
			if f.Name == "email" {
				assert.Equal(t, "Contact email", f.Description)
				return
			}
		}
		t.Fatal("email field missing")
	})

	t.Run("inline enums", func(t *testing.T) {
		require.Len(t, entity.Enums, 1)
		assert.Equal(t, "OrderState", entity.Enums[0].Name)
		assert.Equal(t, "Order state", entity.Enums[0].Description)
		assert.Equal(t, []string{"NEW", "SHIPPED"}, entity.Enums[0].Values)
	})

	t.Run("relationships", func(t *testing.T) {
		assert.Equal(t, []string{"Order{lines} to OrderLine{order}"}, relationshipLines(entity, schema.OneToMany))
		assert.Equal(t, []string{
			"Order{owner required} to Person",
			"Order{tracking} to Shipment",
		}, relationshipLines(entity, schema.OneToOne))
		assert.Equal(t, []string{"Order{labels} to Label{order}"}, relationshipLines(entity, schema.ManyToMany))
		assert.Equal(t, []string{"Order{customer} to Customer"}, relationshipLines(entity, schema.ManyToOne))
	})
}

func TestGenerateEntityDefaultPackage(t *testing.T) {
	doc := loadTestDocument(t, salesSpec)
	def, _ := doc.Lookup("Customer")

	assert.Equal(t, DefaultPackage, New(doc, Options{}).GenerateEntity(def).Package)
	assert.Equal(t, "crm", New(doc, Options{DefaultPackage: "crm"}).GenerateEntity(def).Package)
}

func TestGenerateEntityUnresolvedReferences(t *testing.T) {
	order := &schema.Definition{
		Name: "Order",
		Type: schema.TypeObject,
		Properties: []*schema.Property{
			{Name: "warehouse", Ref: "#/components/schemas/Warehouse"},
			{Name: "carrier_id", Type: schema.TypeString, Markers: schema.Markers{EntityRef: "#/components/schemas/carrier"}},
		},
	}
	doc := newTestDocument(order)

	entity := New(doc, Options{}).GenerateEntity(order)

	decls := fieldDeclarations(entity)
	assert.Equal(t, "Warehouse", decls["warehouse"])
	assert.NotContains(t, decls, "carrierId")
	assert.Equal(t, []string{"Order{carrier} to Carrier"}, relationshipLines(entity, schema.ManyToOne))
}

func TestGenerateEntityDanglingReferencesInDocument(t *testing.T) {
	doc := loadTestDocument(t, `
openapi: 3.0.3
info: {title: t, version: "1"}
paths: {}
components:
  schemas:
    Order:
      type: object
      allOf:
        - $ref: '#/components/schemas/Base'
      properties:
        warehouse:
          $ref: '#/components/schemas/Warehouse'
        customer:
          $ref: '#/components/schemas/Customer'
        note:
          type: string
    Customer:
      type: object
      properties:
        name:
          type: string
`)

	model := Generate(doc, Options{})

	require.Len(t, model.Entities, 2)
	order := model.Entities[0]
	decls := fieldDeclarations(order)
	assert.Equal(t, "Warehouse", decls["warehouse"])
	assert.Equal(t, "String", decls["note"])
	assert.Equal(t, []string{"Order{customer} to Customer"}, relationshipLines(order, schema.ManyToOne))
}

func TestGenerateEntityMarkerToEnumBecomesField(t *testing.T) {
	order := &schema.Definition{
		Name:     "Order",
		Type:     schema.TypeObject,
		Required: []string{"status_id"},
		Properties: []*schema.Property{
			{Name: "status_id", Type: schema.TypeString, Markers: schema.Markers{EntityRef: "#/components/schemas/Status", Unique: true}},
		},
	}
	status := &schema.Definition{Name: "Status", Type: schema.TypeString, Enum: []string{"open"}}
	doc := newTestDocument(order, status)

	entity := New(doc, Options{}).GenerateEntity(order)

	assert.Empty(t, entity.Relationships)
	assert.Equal(t, "Status", fieldDeclarations(entity)["statusId"])
}

func TestGenerateEntityUnknownRelationshipMarker(t *testing.T) {
	order := &schema.Definition{
		Name: "Order",
		Type: schema.TypeObject,
		Properties: []*schema.Property{
			{Name: "customer", Ref: "#/components/schemas/Customer", Markers: schema.Markers{Relationship: "sideways"}},
			{Name: "buyer_id", Type: schema.TypeString, Markers: schema.Markers{EntityRef: "#/components/schemas/Customer", Relationship: "weird"}},
			{Name: "lines", Type: schema.TypeArray, ItemsRef: "#/components/schemas/Customer", Markers: schema.Markers{Relationship: "many"}},
			{Name: "seller", Ref: "#/components/schemas/Customer"},
		},
	}
	customer := &schema.Definition{Name: "Customer", Type: schema.TypeObject}

	entity := New(newTestDocument(order, customer), Options{}).GenerateEntity(order)

	require.Len(t, entity.Relationships, 1)
	assert.Equal(t, "Order{seller} to Customer", entity.Relationships[0].String())
	assert.Len(t, entity.Fields, 1)
}

func TestGenerateEntityCompositionCycle(t *testing.T) {
	a := &schema.Definition{
		Name:       "A",
		Type:       schema.TypeObject,
		Properties: []*schema.Property{{Name: "alpha", Type: schema.TypeString}},
		AllOf:      []*schema.Member{{Ref: "#/components/schemas/B"}},
	}
	b := &schema.Definition{
		Name:       "B",
		Type:       schema.TypeObject,
		Properties: []*schema.Property{{Name: "beta", Type: schema.TypeBoolean}},
		AnyOf:      []*schema.Member{{Ref: "#/components/schemas/A"}, {Ref: "#/components/schemas/Gone"}},
	}
	doc := newTestDocument(a, b)

	entity := New(doc, Options{}).GenerateEntity(a)

	var names []string
	for _, f := range entity.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"uuid", "alpha", "beta"}, names)
}

func TestClassifyProperty(t *testing.T) {
	tests := []struct {
		name string
		prop *schema.Property
		want propertyClass
	}{
		{name: "hyphenated", prop: &schema.Property{Name: "x-trace", Type: schema.TypeString}, want: propertySkipped},
		{name: "reserved id", prop: &schema.Property{Name: "id", Type: schema.TypeString}, want: propertySkipped},
		{name: "reserved with marker", prop: &schema.Property{Name: "uuid", Markers: schema.Markers{EntityRef: "X"}}, want: propertySkipped},
		{name: "marker beats scalar", prop: &schema.Property{Name: "a_id", Type: schema.TypeString, Markers: schema.Markers{EntityRef: "X"}}, want: propertyEntityRef},
		{name: "scalar", prop: &schema.Property{Name: "a", Type: schema.TypeInteger}, want: propertyScalar},
		{name: "array of refs", prop: &schema.Property{Name: "a", Type: schema.TypeArray, ItemsRef: "X"}, want: propertyArrayRef},
		{name: "array of inline items", prop: &schema.Property{Name: "a", Type: schema.TypeArray}, want: propertySkipped},
		{name: "inline object", prop: &schema.Property{Name: "a", Type: schema.TypeObject}, want: propertySkipped},
		{name: "ref", prop: &schema.Property{Name: "a", Ref: "X"}, want: propertyRef},
		{name: "composed", prop: &schema.Property{Name: "a", Composed: []*schema.Member{{Ref: "X"}, {}}}, want: propertyComposed},
		{name: "single member composition", prop: &schema.Property{Name: "a", Composed: []*schema.Member{{Ref: "X"}}}, want: propertySkipped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyProperty(tt.prop))
		})
	}
}
