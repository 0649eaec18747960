package mockapi

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/petfriends/api-contract-tests/client"
	"github.com/petfriends/api-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "owner@example.com"
	testPassword = "secret"
)

type fixture struct {
	service *Service
	client  *client.PetFriendsClient
	userID  string
}

func newFixture(t *testing.T, faults Faults) fixture {
	service := New(faults)
	userID := service.AddUser(testEmail, testPassword)
	server := httptest.NewServer(service)
	t.Cleanup(server.Close)
	return fixture{service: service, client: client.NewPetFriendsClient(server.URL, nil, nil), userID: userID}
}

func (f fixture) authKey(t *testing.T) string {
	resp, err := f.client.GetAPIKey(testEmail, testPassword)
	require.NoError(t, err)
	require.Equal(t, 200, resp.Status)
	key, ok := resp.AuthKey()
	require.True(t, ok)
	return key
}

func TestAPIKey(t *testing.T) {
	f := newFixture(t, Faults{})
	key1, key2 := f.authKey(t), f.authKey(t)
	assert.NotEqual(t, key1, key2)

	resp, err := f.client.GetAPIKey(testEmail, "wrong")
	require.NoError(t, err)
	assert.Equal(t, 403, resp.Status)
	assert.False(t, resp.IsJSON())
}

func TestPetRoutesRequireKnownAuthKey(t *testing.T) {
	f := newFixture(t, Faults{})
	resp, err := f.client.GetListOfPets("not-a-key", servicedef.FilterAllPets)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.Status)

	resp, err = f.client.AddNewPetSimple("", client.PetFields{Name: "a", AnimalType: "b", Age: "1"})
	require.NoError(t, err)
	assert.Equal(t, 403, resp.Status)
}

func TestListFiltersByOwner(t *testing.T) {
	f := newFixture(t, Faults{})
	otherID := f.service.AddUser("other@example.com", "pw")
	f.service.AddPet(otherID, "Rex", "dog", "3")
	mine := f.service.AddPet(f.userID, "Tom", "cat", "5")
	key := f.authKey(t)

	resp, err := f.client.GetListOfPets(key, servicedef.FilterAllPets)
	require.NoError(t, err)
	all, ok := resp.Pets()
	require.True(t, ok)
	assert.Len(t, all, 2)

	resp, err = f.client.GetListOfPets(key, servicedef.FilterMyPets)
	require.NoError(t, err)
	own, ok := resp.Pets()
	require.True(t, ok)
	require.Len(t, own, 1)
	assert.Equal(t, mine, own[0].ID)
	assert.Equal(t, f.userID, own[0].UserID.StringValue())

	resp, err = f.client.GetListOfPets(key, "everything")
	require.NoError(t, err)
	assert.Equal(t, 400, resp.Status)
}

func TestCreatePetSimpleValidatesFields(t *testing.T) {
	f := newFixture(t, Faults{})
	key := f.authKey(t)

	for _, p := range []struct {
		fields client.PetFields
		status int
	}{
		{client.PetFields{Name: "Кошка", AnimalType: "cat", Age: "8"}, 200},
		{client.PetFields{Name: "Кошка", AnimalType: "cat", Age: "1"}, 200},
		{client.PetFields{Name: "Кошка", AnimalType: "cat", Age: "49"}, 200},
		{client.PetFields{Name: "Кошка", AnimalType: "cat", Age: "50"}, 400},
		{client.PetFields{Name: "Кошка", AnimalType: "cat", Age: "0"}, 400},
		{client.PetFields{Name: "Кошка", AnimalType: "cat", Age: "-1"}, 400},
		{client.PetFields{Name: "Кошка", AnimalType: "cat", Age: "1.5"}, 400},
		{client.PetFields{Name: "Кошка", AnimalType: "cat", Age: "2147483648"}, 400},
		{client.PetFields{Name: "", AnimalType: "cat", Age: "8"}, 400},
		{client.PetFields{Name: "Кошка", AnimalType: "", Age: "8"}, 400},
	} {
		resp, err := f.client.AddNewPetSimple(key, p.fields)
		require.NoError(t, err)
		assert.Equal(t, p.status, resp.Status, "for %+v", p.fields)
		if p.status == 200 {
			pet, ok := resp.Pet()
			require.True(t, ok)
			assert.Equal(t, p.fields.Name, pet.Name)
			assert.Equal(t, p.fields.AnimalType, pet.AnimalType)
			assert.Equal(t, p.fields.Age, pet.Age)
			assert.Equal(t, f.userID, pet.UserID.StringValue())
			assert.True(t, pet.CreatedAt.IsDefined())
		}
	}
	assert.Equal(t, 3, f.service.PetCount(f.userID))
}

func TestCreatePetWithPhoto(t *testing.T) {
	f := newFixture(t, Faults{})
	key := f.authKey(t)
	fields := client.PetFields{Name: "Rex", AnimalType: "dog", Age: "2"}

	resp, err := f.client.AddNewPet(key, fields, client.GeneratedJPEG())
	require.NoError(t, err)
	require.Equal(t, 200, resp.Status)
	pet, ok := resp.Pet()
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(pet.Photo.StringValue(), "data:image/jpeg;base64,"))

	resp, err = f.client.AddNewPet(key, fields, client.TextFile())
	require.NoError(t, err)
	assert.Equal(t, 500, resp.Status)
	assert.Equal(t, 1, f.service.PetCount(f.userID))
}

func TestSetPhoto(t *testing.T) {
	f := newFixture(t, Faults{})
	key := f.authKey(t)
	petID := f.service.AddPet(f.userID, "Tom", "cat", "5")

	resp, err := f.client.AddSetPhoto(key, petID, client.TextFile())
	require.NoError(t, err)
	assert.Equal(t, 500, resp.Status)

	resp, err = f.client.AddSetPhoto(key, petID, client.GeneratedJPEG())
	require.NoError(t, err)
	require.Equal(t, 200, resp.Status)
	pet, ok := resp.Pet()
	require.True(t, ok)
	assert.True(t, pet.Photo.IsDefined())

	resp, err = f.client.AddSetPhoto(key, "no-such-pet", client.GeneratedJPEG())
	require.NoError(t, err)
	assert.Equal(t, 400, resp.Status)
}

func TestUpdatePet(t *testing.T) {
	f := newFixture(t, Faults{})
	key := f.authKey(t)
	petID := f.service.AddPet(f.userID, "Tom", "cat", "5")
	fields := client.PetFields{Name: "Мурзик", AnimalType: "Котэ", Age: "5"}

	resp, err := f.client.UpdatePetInfo(key, petID, fields)
	require.NoError(t, err)
	require.Equal(t, 200, resp.Status)
	pet, ok := resp.Pet()
	require.True(t, ok)
	assert.Equal(t, client.Pet{ID: petID, Name: "Мурзик", AnimalType: "Котэ", Age: "5", UserID: pet.UserID, CreatedAt: pet.CreatedAt}, pet)

	resp, err = f.client.UpdatePetInfo(key, petID, client.PetFields{Name: "x", AnimalType: "y", Age: "100"})
	require.NoError(t, err)
	assert.Equal(t, 400, resp.Status)
}

func TestDeleteOnlyOwnPets(t *testing.T) {
	f := newFixture(t, Faults{})
	otherID := f.service.AddUser("other@example.com", "pw")
	theirs := f.service.AddPet(otherID, "Rex", "dog", "3")
	mine := f.service.AddPet(f.userID, "Tom", "cat", "5")
	key := f.authKey(t)

	resp, err := f.client.DeletePet(key, theirs)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.Status)
	assert.Equal(t, 1, f.service.PetCount(otherID))

	resp, err = f.client.DeletePet(key, mine)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, 0, f.service.PetCount(f.userID))
}

func TestConcurrentDeletesRemovePetOnce(t *testing.T) {
	f := newFixture(t, Faults{})
	mine := f.service.AddPet(f.userID, "Tom", "cat", "5")
	f.service.AddPet(f.userID, "Rex", "dog", "3")
	key := f.authKey(t)

	const attempts = 8
	statuses := make(chan int, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := f.client.DeletePet(key, mine)
			if assert.NoError(t, err) {
				statuses <- resp.Status
			}
		}()
	}
	wg.Wait()
	close(statuses)

	counts := map[int]int{}
	for status := range statuses {
		counts[status]++
	}
	assert.Equal(t, map[int]int{200: 1, 400: attempts - 1}, counts)
	assert.Equal(t, 1, f.service.PetCount(f.userID))
}

func TestFaults(t *testing.T) {
	t.Run("accept any credentials", func(t *testing.T) {
		f := newFixture(t, Faults{AcceptAnyCredentials: true})
		resp, err := f.client.GetAPIKey("", "")
		require.NoError(t, err)
		assert.Equal(t, 200, resp.Status)
	})

	t.Run("ignore auth key", func(t *testing.T) {
		f := newFixture(t, Faults{IgnoreAuthKey: true})
		resp, err := f.client.GetListOfPets("bogus", servicedef.FilterMyPets)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.Status)
	})

	t.Run("accept invalid data", func(t *testing.T) {
		f := newFixture(t, Faults{AcceptEmptyFields: true, AcceptInvalidAge: true})
		resp, err := f.client.AddNewPetSimple(f.authKey(t), client.PetFields{Age: "абв"})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.Status)
	})

	t.Run("accept any photo", func(t *testing.T) {
		f := newFixture(t, Faults{AcceptAnyPhoto: true})
		petID := f.service.AddPet(f.userID, "Tom", "cat", "5")
		resp, err := f.client.AddSetPhoto(f.authKey(t), petID, client.TextFile())
		require.NoError(t, err)
		assert.Equal(t, 200, resp.Status)
	})

	t.Run("keep deleted pets", func(t *testing.T) {
		f := newFixture(t, Faults{KeepDeletedPets: true})
		petID := f.service.AddPet(f.userID, "Tom", "cat", "5")
		resp, err := f.client.DeletePet(f.authKey(t), petID)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.Status)
		assert.Equal(t, 1, f.service.PetCount(f.userID))
	})

	t.Run("alter names", func(t *testing.T) {
		f := newFixture(t, Faults{AlterNames: true})
		resp, err := f.client.AddNewPetSimple(f.authKey(t), client.PetFields{Name: "Tom", AnimalType: "cat", Age: "5"})
		require.NoError(t, err)
		pet, ok := resp.Pet()
		require.True(t, ok)
		assert.NotEqual(t, "Tom", pet.Name)
	})
}
