package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/petfriends/api-contract-tests/framework"
	"github.com/petfriends/api-contract-tests/servicedef"
)

const maxLoggedBodyLength = 1000

// PetFriendsClient sends requests to the PetFriends API.
//
// Every operation performs exactly one HTTP round trip, with no retries and no timeout of its own,
// and returns the status code and body exactly as the service sent them. A status code that
// indicates failure is not treated as an error: deciding what is correct is up to the caller. The
// error return value is only non-nil if the round trip itself could not be completed.
type PetFriendsClient struct {
	baseURL    string
	httpClient *http.Client
	logger     framework.Logger
}

// PetFields contains the user-editable properties of a pet, in the string form that the API
// accepts them. Age is a string so that malformed values can be sent.
type PetFields struct {
	Name       string
	AnimalType string
	Age        string
}

// Form returns the fields as form values. Tests that need to omit a field can delete it from
// the result and use AddNewPetSimpleForm.
func (f PetFields) Form() url.Values {
	return url.Values{
		servicedef.FieldName:       {f.Name},
		servicedef.FieldAnimalType: {f.AnimalType},
		servicedef.FieldAge:        {f.Age},
	}
}

// NewPetFriendsClient creates a client for the service at the specified base URL. If httpClient
// is nil, http.DefaultClient is used. If logger is nil, nothing is logged.
func NewPetFriendsClient(baseURL string, httpClient *http.Client, logger framework.Logger) *PetFriendsClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &PetFriendsClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// WithLogger returns a copy of the client that logs to a different destination.
func (c *PetFriendsClient) WithLogger(logger framework.Logger) *PetFriendsClient {
	return NewPetFriendsClient(c.baseURL, c.httpClient, logger)
}

// GetAPIKey requests an auth key for the specified credentials. If they are valid, the body
// contains a "key" property.
func (c *PetFriendsClient) GetAPIKey(email, password string) (Response, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+servicedef.PathAPIKey, nil)
	if err != nil {
		return Response{}, err
	}
	req.Header.Set(servicedef.HeaderEmail, email)
	req.Header.Set(servicedef.HeaderPassword, password)
	return c.do(req)
}

// GetListOfPets requests the list of pets. The filter is either servicedef.FilterAllPets or
// servicedef.FilterMyPets.
func (c *PetFriendsClient) GetListOfPets(authKey, filter string) (Response, error) {
	query := url.Values{servicedef.QueryFilter: {filter}}
	req, err := http.NewRequest(http.MethodGet, c.baseURL+servicedef.PathPets+"?"+query.Encode(), nil)
	if err != nil {
		return Response{}, err
	}
	c.setAuthKey(req, authKey)
	return c.do(req)
}

// AddNewPet creates a pet with a photo. The body of a successful response is the new pet record.
func (c *PetFriendsClient) AddNewPet(authKey string, fields PetFields, photo Photo) (Response, error) {
	body, contentType, err := buildMultipart(fields.Form(), &photo)
	if err != nil {
		return Response{}, err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+servicedef.PathPets, body)
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Content-Type", contentType)
	c.setAuthKey(req, authKey)
	return c.do(req)
}

// AddNewPetSimple creates a pet without a photo.
func (c *PetFriendsClient) AddNewPetSimple(authKey string, fields PetFields) (Response, error) {
	return c.AddNewPetSimpleForm(authKey, fields.Form())
}

// AddNewPetSimpleForm is the same as AddNewPetSimple, but sends whatever form values it is given.
func (c *PetFriendsClient) AddNewPetSimpleForm(authKey string, form url.Values) (Response, error) {
	return c.sendForm(http.MethodPost, servicedef.PathCreatePetSimple, authKey, form)
}

// AddSetPhoto uploads a photo for an existing pet.
func (c *PetFriendsClient) AddSetPhoto(authKey, petID string, photo Photo) (Response, error) {
	body, contentType, err := buildMultipart(nil, &photo)
	if err != nil {
		return Response{}, err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+servicedef.SetPhotoPath(url.PathEscape(petID)), body)
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Content-Type", contentType)
	c.setAuthKey(req, authKey)
	return c.do(req)
}

// UpdatePetInfo changes the name, animal type, and age of an existing pet.
func (c *PetFriendsClient) UpdatePetInfo(authKey, petID string, fields PetFields) (Response, error) {
	return c.sendForm(http.MethodPut, servicedef.PetPath(url.PathEscape(petID)), authKey, fields.Form())
}

// DeletePet deletes a pet.
func (c *PetFriendsClient) DeletePet(authKey, petID string) (Response, error) {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+servicedef.PetPath(url.PathEscape(petID)), nil)
	if err != nil {
		return Response{}, err
	}
	c.setAuthKey(req, authKey)
	return c.do(req)
}

func (c *PetFriendsClient) sendForm(method, path, authKey string, form url.Values) (Response, error) {
	req, err := http.NewRequest(method, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.setAuthKey(req, authKey)
	return c.do(req)
}

func (c *PetFriendsClient) setAuthKey(req *http.Request, authKey string) {
	req.Header.Set(servicedef.HeaderAuthKey, authKey)
}

func (c *PetFriendsClient) do(req *http.Request) (Response, error) {
	c.logger.Printf(">> %s %s", req.Method, req.URL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("Error: %s", err)
		return Response{}, fmt.Errorf("%s %s failed: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Printf("Error: %s", err)
		return Response{}, fmt.Errorf("error reading response body for %s %s: %w", req.Method, req.URL.Path, err)
	}
	c.logger.Printf("<< %d %s", resp.StatusCode, truncate(string(data), maxLoggedBodyLength))
	return newResponse(resp.StatusCode, data), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// buildMultipart encodes form fields and an optional photo as multipart/form-data. The photo's
// own content type is sent with the file part, as the service inspects it.
func buildMultipart(fields url.Values, photo *Photo) (io.Reader, string, error) {
	buf := bytes.NewBuffer(nil)
	w := multipart.NewWriter(buf)
	for _, name := range []string{servicedef.FieldName, servicedef.FieldAnimalType, servicedef.FieldAge} {
		if values, ok := fields[name]; ok {
			for _, v := range values {
				if err := w.WriteField(name, v); err != nil {
					return nil, "", err
				}
			}
		}
	}
	if photo != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			servicedef.FieldPetPhoto, quoteEscaper.Replace(photo.Filename)))
		h.Set("Content-Type", photo.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(photo.Content); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

// truncate shortens s to at most max bytes without splitting a UTF-8 sequence.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + fmt.Sprintf("... (%d bytes)", len(s))
}
