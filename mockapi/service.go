// Package mockapi is an in-memory implementation of the PetFriends API. The repository's own tests
// run the contract tests against it, either as it is or with some of its rules deliberately
// broken, to check that the tests pass and fail when they should.
package mockapi

import (
	"context"
	"encoding/base64"
	"net/http"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/petfriends/api-contract-tests/servicedef"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const (
	minAge = 1
	maxAge = 49
)

var digitsPattern = regexp.MustCompile(`^[0-9]+$`)

// Faults selects rules that the service breaks. The zero value is a service that follows the
// contract.
type Faults struct {
	AcceptAnyCredentials bool // issue a key for any email and password
	IgnoreAuthKey        bool // treat any auth_key as belonging to the first user
	AcceptEmptyFields    bool // allow an empty name or animal_type
	AcceptInvalidAge     bool // allow any age
	AcceptAnyPhoto       bool // store files that are not images
	KeepDeletedPets      bool // report success for deletes without deleting
	AlterNames           bool // return a different name than the one that was submitted
}

type user struct {
	id       string
	email    string
	password string
}

type pet struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AnimalType string `json:"animal_type"`
	Age        string `json:"age"`
	PetPhoto   string `json:"pet_photo"`
	UserID     string `json:"user_id"`
	CreatedAt  string `json:"created_at"`
}

type petList struct {
	Pets []pet `json:"pets"`
}

type userKey struct{}

// Service is the mock API. It implements http.Handler.
type Service struct {
	faults  Faults
	lock    sync.Mutex
	users   []*user
	keys    map[string]*user
	pets    []*pet
	handler http.Handler
}

// New creates a service with no users and no pets.
func New(faults Faults) *Service {
	s := &Service{
		faults: faults,
		keys:   make(map[string]*user),
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Get(servicedef.PathAPIKey, s.getAPIKey)
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuthKey)
		r.Get(servicedef.PathPets, s.listPets)
		r.Post(servicedef.PathPets, s.createPet)
		r.Post(servicedef.PathCreatePetSimple, s.createPetSimple)
		r.Post(servicedef.SetPhotoPath("{petID}"), s.setPhoto)
		r.Put(servicedef.PetPath("{petID}"), s.updatePet)
		r.Delete(servicedef.PetPath("{petID}"), s.deletePet)
	})
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>PetFriends</body></html>"))
	})
	s.handler = r
	return s
}

func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// AddUser registers a user and returns the user's ID.
func (s *Service) AddUser(email, password string) string {
	s.lock.Lock()
	defer s.lock.Unlock()
	u := &user{id: uuid.NewString(), email: email, password: password}
	s.users = append(s.users, u)
	return u.id
}

// AddPet creates a pet owned by the specified user, bypassing validation. It returns the pet's ID.
func (s *Service) AddPet(userID, name, animalType, age string) string {
	s.lock.Lock()
	defer s.lock.Unlock()
	p := s.newPet(userID, name, animalType, age)
	return p.ID
}

// PetCount returns the number of pets owned by the specified user.
func (s *Service) PetCount(userID string) int {
	s.lock.Lock()
	defer s.lock.Unlock()
	n := 0
	for _, p := range s.pets {
		if p.UserID == userID {
			n++
		}
	}
	return n
}

// the caller must hold the lock
func (s *Service) newPet(userID, name, animalType, age string) *pet {
	p := &pet{
		ID:         uuid.NewString(),
		Name:       name,
		AnimalType: animalType,
		Age:        age,
		UserID:     userID,
		CreatedAt:  strconv.FormatFloat(float64(time.Now().UnixNano())/1e9, 'f', 6, 64),
	}
	s.pets = append([]*pet{p}, s.pets...)
	return p
}

func (s *Service) findUser(email, password string) *user {
	for _, u := range s.users {
		if u.email == email && u.password == password {
			return u
		}
	}
	if s.faults.AcceptAnyCredentials && len(s.users) > 0 {
		return s.users[0]
	}
	return nil
}

func (s *Service) findPet(id string) (int, *pet) {
	for i, p := range s.pets {
		if p.ID == id {
			return i, p
		}
	}
	return -1, nil
}

func (s *Service) fieldsValid(name, animalType, age string) bool {
	if !s.faults.AcceptEmptyFields && (name == "" || animalType == "") {
		return false
	}
	if s.faults.AcceptInvalidAge {
		return true
	}
	if !digitsPattern.MatchString(age) {
		return false
	}
	n, err := strconv.Atoi(age)
	return err == nil && n >= minAge && n <= maxAge
}

func (s *Service) echoedName(name string) string {
	if s.faults.AlterNames {
		return name + "!"
	}
	return name
}

func photoDataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func currentUser(ctx context.Context) *user {
	u, _ := ctx.Value(userKey{}).(*user)
	return u
}
