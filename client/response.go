package client

import (
	"encoding/json"

	"github.com/petfriends/api-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Response is the outcome of one API call: the HTTP status and the body.
//
// The service returns JSON for most requests, but error responses are often an HTML page or
// plain text. Body is the parsed JSON if the payload was valid JSON, or else a string value
// containing the raw text, so that a test can always inspect it without a type switch.
type Response struct {
	Status int
	Body   ldvalue.Value
	Raw    string
	isJSON bool
}

// Pet is a pet record as returned by the service. Properties that the service does not always
// include are optional.
type Pet struct {
	ID         string
	Name       string
	AnimalType string
	Age        string
	Photo      ldvalue.OptionalString
	UserID     ldvalue.OptionalString
	CreatedAt  ldvalue.OptionalString
}

func newResponse(status int, data []byte) Response {
	r := Response{Status: status, Raw: string(data)}
	if len(data) > 0 && json.Valid(data) {
		r.Body = ldvalue.Parse(data)
		r.isJSON = true
	} else {
		r.Body = ldvalue.String(string(data))
	}
	return r
}

// IsJSON returns true if the body was valid JSON.
func (r Response) IsJSON() bool {
	return r.isJSON
}

// HasField returns true if the body is a JSON object with the specified property.
func (r Response) HasField(name string) bool {
	if r.Body.Type() != ldvalue.ObjectType {
		return false
	}
	for _, k := range r.Body.Keys() {
		if k == name {
			return true
		}
	}
	return false
}

// Field returns a property of the body, or a null value if the body is not an object or does
// not have that property.
func (r Response) Field(name string) ldvalue.Value {
	return r.Body.GetByKey(name)
}

// AuthKey returns the "key" property of a successful GetAPIKey response.
func (r Response) AuthKey() (string, bool) {
	key := r.Field(servicedef.PropKey)
	if !key.IsString() {
		return "", false
	}
	return key.StringValue(), true
}

// Pet interprets the body as a single pet record.
func (r Response) Pet() (Pet, bool) {
	return petFromValue(r.Body)
}

// Pets interprets the body as a pet list, which is an object with a "pets" array. It returns
// false if the body does not have that shape. Elements that are not objects are skipped.
func (r Response) Pets() ([]Pet, bool) {
	list := r.Field(servicedef.PropPets)
	if list.Type() != ldvalue.ArrayType {
		return nil, false
	}
	pets := make([]Pet, 0, list.Count())
	for i := 0; i < list.Count(); i++ {
		if p, ok := petFromValue(list.GetByIndex(i)); ok {
			pets = append(pets, p)
		}
	}
	return pets, true
}

func (r Response) String() string {
	if r.isJSON {
		return r.Body.JSONString()
	}
	return r.Raw
}

// ContainsPet returns true if a pet with the specified ID is in the list.
func ContainsPet(pets []Pet, id string) bool {
	for _, p := range pets {
		if p.ID == id {
			return true
		}
	}
	return false
}

func petFromValue(v ldvalue.Value) (Pet, bool) {
	if v.Type() != ldvalue.ObjectType {
		return Pet{}, false
	}
	p := Pet{
		ID:         scalarString(v.GetByKey(servicedef.PropID)),
		Name:       scalarString(v.GetByKey(servicedef.PropName)),
		AnimalType: scalarString(v.GetByKey(servicedef.PropAnimalType)),
		Age:        scalarString(v.GetByKey(servicedef.PropAge)),
	}
	if photo := v.GetByKey(servicedef.PropPetPhoto); photo.IsString() && photo.StringValue() != "" {
		p.Photo = ldvalue.NewOptionalString(photo.StringValue())
	}
	if userID := v.GetByKey(servicedef.PropUserID); !userID.IsNull() {
		p.UserID = ldvalue.NewOptionalString(scalarString(userID))
	}
	if createdAt := v.GetByKey(servicedef.PropCreatedAt); !createdAt.IsNull() {
		p.CreatedAt = ldvalue.NewOptionalString(scalarString(createdAt))
	}
	return p, true
}

// scalarString returns a string property as-is, and a number as its JSON representation, since
// the service is not consistent about which of those it uses for ages and IDs.
func scalarString(v ldvalue.Value) string {
	switch v.Type() {
	case ldvalue.StringType:
		return v.StringValue()
	case ldvalue.NumberType, ldvalue.BoolType:
		return v.JSONString()
	default:
		return ""
	}
}
