package mockapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/petfriends/api-contract-tests/servicedef"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxUploadSize = 10 << 20

func (s *Service) getAPIKey(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()
	u := s.findUser(r.Header.Get(servicedef.HeaderEmail), r.Header.Get(servicedef.HeaderPassword))
	if u == nil {
		writeText(w, http.StatusForbidden, "This user wasn't found in database")
		return
	}
	key := uuid.NewString()
	s.keys[key] = u
	writeJSON(w, http.StatusOK, map[string]string{servicedef.PropKey: key})
}

func (s *Service) requireAuthKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.lock.Lock()
		u := s.keys[r.Header.Get(servicedef.HeaderAuthKey)]
		if u == nil && s.faults.IgnoreAuthKey && len(s.users) > 0 {
			u = s.users[0]
		}
		s.lock.Unlock()
		if u == nil {
			writeText(w, http.StatusForbidden, "Please provide 'auth_key' Header")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, u)))
	})
}

func (s *Service) listPets(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r.Context())
	filter := r.URL.Query().Get(servicedef.QueryFilter)
	if filter != servicedef.FilterAllPets && filter != servicedef.FilterMyPets {
		writeText(w, http.StatusBadRequest, "Filter value is incorrect")
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	result := petList{Pets: []pet{}}
	for _, p := range s.pets {
		if filter == servicedef.FilterAllPets || p.UserID == u.id {
			result.Pets = append(result.Pets, *p)
		}
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Service) createPet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeText(w, http.StatusBadRequest, "Bad request: "+err.Error())
		return
	}
	name, animalType, age := r.FormValue(servicedef.FieldName), r.FormValue(servicedef.FieldAnimalType),
		r.FormValue(servicedef.FieldAge)
	if !s.fieldsValid(name, animalType, age) {
		writeText(w, http.StatusBadRequest, "Provided data is incorrect")
		return
	}
	photo, ok := s.readPhoto(w, r)
	if !ok {
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	p := s.newPet(currentUser(r.Context()).id, s.echoedName(name), animalType, age)
	p.PetPhoto = photo
	writeJSON(w, http.StatusOK, p)
}

func (s *Service) createPetSimple(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeText(w, http.StatusBadRequest, "Bad request: "+err.Error())
		return
	}
	name, animalType, age := r.PostFormValue(servicedef.FieldName), r.PostFormValue(servicedef.FieldAnimalType),
		r.PostFormValue(servicedef.FieldAge)
	if !s.fieldsValid(name, animalType, age) {
		writeText(w, http.StatusBadRequest, "Provided data is incorrect")
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	p := s.newPet(currentUser(r.Context()).id, s.echoedName(name), animalType, age)
	writeJSON(w, http.StatusOK, p)
}

func (s *Service) setPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeText(w, http.StatusBadRequest, "Bad request: "+err.Error())
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	_, p := s.requireOwnPet(w, r)
	if p == nil {
		return
	}
	photo, ok := s.readPhoto(w, r)
	if !ok {
		return
	}
	p.PetPhoto = photo
	writeJSON(w, http.StatusOK, p)
}

func (s *Service) updatePet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeText(w, http.StatusBadRequest, "Bad request: "+err.Error())
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	_, p := s.requireOwnPet(w, r)
	if p == nil {
		return
	}
	name, animalType, age := r.PostFormValue(servicedef.FieldName), r.PostFormValue(servicedef.FieldAnimalType),
		r.PostFormValue(servicedef.FieldAge)
	if !s.fieldsValid(name, animalType, age) {
		writeText(w, http.StatusBadRequest, "Provided data is incorrect")
		return
	}
	p.Name, p.AnimalType, p.Age = s.echoedName(name), animalType, age
	writeJSON(w, http.StatusOK, p)
}

func (s *Service) deletePet(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()
	i, p := s.requireOwnPet(w, r)
	if p == nil {
		return
	}
	if !s.faults.KeepDeletedPets {
		s.pets = append(s.pets[:i], s.pets[i+1:]...)
	}
	writeText(w, http.StatusOK, "")
}

// requireOwnPet finds the pet named in the URL, which must belong to the current user. The
// caller must hold s.lock until it is done with the pet.
func (s *Service) requireOwnPet(w http.ResponseWriter, r *http.Request) (int, *pet) {
	i, p := s.findPet(chi.URLParam(r, "petID"))
	if p == nil {
		writeText(w, http.StatusBadRequest, "Pet with this id wasn't found")
		return -1, nil
	}
	if p.UserID != currentUser(r.Context()).id {
		writeText(w, http.StatusForbidden, "This pet belongs to another user")
		return -1, nil
	}
	return i, p
}

// readPhoto reads the uploaded photo. A missing file is a client error; a file that is not an
// image is a server error, as that is what the real service reports when it fails to process it.
func (s *Service) readPhoto(w http.ResponseWriter, r *http.Request) (string, bool) {
	file, _, err := r.FormFile(servicedef.FieldPetPhoto)
	if err != nil {
		writeText(w, http.StatusBadRequest, "Photo is required")
		return "", false
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		writeText(w, http.StatusBadRequest, "Bad request: "+err.Error())
		return "", false
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") && !s.faults.AcceptAnyPhoto {
		writeText(w, http.StatusInternalServerError, "Internal Server Error: cannot identify image file")
		return "", false
	}
	return photoDataURI(contentType, data), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, message)
}
