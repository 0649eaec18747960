// Package servicedef contains the wire-level names of the PetFriends API: paths, headers, form
// fields, query parameters, and JSON properties. Both the client and the mock API use these.
package servicedef

const (
	PathAPIKey          = "/api/key"
	PathPets            = "/api/pets"
	PathCreatePetSimple = "/api/create_pet_simple"
	PathSetPhotoPrefix  = "/api/pets/set_photo/"
	PathPetPrefix       = "/api/pets/"
)

const (
	HeaderEmail    = "email"
	HeaderPassword = "password"
	HeaderAuthKey  = "auth_key"
)

const QueryFilter = "filter"

// Values of the filter query parameter.
const (
	FilterAllPets = ""
	FilterMyPets  = "my_pets"
)

// Form fields of the create and update requests.
const (
	FieldName       = "name"
	FieldAnimalType = "animal_type"
	FieldAge        = "age"
	FieldPetPhoto   = "pet_photo"
)

// JSON properties of response bodies.
const (
	PropKey        = "key"
	PropPets       = "pets"
	PropID         = "id"
	PropName       = "name"
	PropAnimalType = "animal_type"
	PropAge        = "age"
	PropPetPhoto   = "pet_photo"
	PropCreatedAt  = "created_at"
	PropUserID     = "user_id"
)

// PetPath returns the path of a single pet resource.
func PetPath(petID string) string {
	return PathPetPrefix + petID
}

// SetPhotoPath returns the path for uploading a photo of an existing pet.
func SetPhotoPath(petID string) string {
	return PathSetPhotoPrefix + petID
}
