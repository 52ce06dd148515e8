package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-org-backend/pkg/models"
)

func TestListOrganisations(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t, nil)

	ownerToken, _ := registerUser(t, h, "Owner", "One", "owner@x.com")
	memberToken, member := registerUser(t, h, "Member", "Two", "member@x.com")

	// Owner creates a second organisation and adds the member.
	rec := doJSON(t, h, http.MethodPost, "/api/organisations", ownerToken,
		models.CreateOrganisationRequest{Name: "Acme", Description: "Widgets"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Organisation created successfully", env.Message)
	var created models.Organisation
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Acme", created.Name)

	rec = doJSON(t, h, http.MethodPost, "/api/organisations/"+created.ID+"/users",
		ownerToken, models.AddMemberRequest{UserID: member.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Owner sees default + created; member sees default + joined.
	ownerOrgs := listOrganisations(t, h, ownerToken)
	assert.Len(t, ownerOrgs, 2)

	memberOrgs := listOrganisations(t, h, memberToken)
	require.Len(t, memberOrgs, 2)
	names := []string{memberOrgs[0].Name, memberOrgs[1].Name}
	assert.Contains(t, names, "Member's Organisation")
	assert.Contains(t, names, "Acme")
}

func TestGetOrganisation(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t, nil)

	ownerToken, _ := registerUser(t, h, "Owner", "One", "owner@x.com")
	memberToken, member := registerUser(t, h, "Member", "Two", "member@x.com")
	outsiderToken, _ := registerUser(t, h, "Outsider", "Three", "outsider@x.com")

	orgs := listOrganisations(t, h, ownerToken)
	require.Len(t, orgs, 1)
	orgID := orgs[0].ID

	rec := doJSON(t, h, http.MethodPost, "/api/organisations/"+orgID+"/users",
		ownerToken, models.AddMemberRequest{UserID: member.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("owner", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/organisations/"+orgID, ownerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		env := decodeEnvelope(t, rec)
		var org models.Organisation
		require.NoError(t, json.Unmarshal(env.Data, &org))
		assert.Equal(t, orgID, org.ID)
		assert.Equal(t, "Owner's Organisation", org.Name)
	})

	t.Run("member", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/organisations/"+orgID, memberToken, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("outsider", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/organisations/"+orgID, outsiderToken, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)

		env := decodeEnvelope(t, rec)
		assert.Equal(t, "You do not belong to this organisation", env.Message)
	})

	t.Run("unknown org is 404 even for outsiders", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/organisations/no-such-org", outsiderToken, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)

		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Organisation not found", env.Message)
	})
}

func TestCreateOrganisation_Validation(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t, nil)
	token, _ := registerUser(t, h, "Owner", "One", "owner@x.com")

	rec := doJSON(t, h, http.MethodPost, "/api/organisations", token,
		models.CreateOrganisationRequest{Name: "  "})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAddMember(t *testing.T) {
	t.Parallel()

	h, _ := newTestServer(t, nil)

	ownerToken, _ := registerUser(t, h, "Owner", "One", "owner@x.com")
	intruderToken, _ := registerUser(t, h, "Intruder", "Two", "intruder@x.com")
	_, target := registerUser(t, h, "Target", "Three", "target@x.com")

	orgs := listOrganisations(t, h, ownerToken)
	require.Len(t, orgs, 1)
	orgID := orgs[0].ID

	t.Run("non-owner cannot add", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/organisations/"+orgID+"/users",
			intruderToken, models.AddMemberRequest{UserID: target.ID})
		require.Equal(t, http.StatusForbidden, rec.Code)

		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Only the organisation owner can add users", env.Message)
	})

	t.Run("unknown organisation", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/organisations/no-such-org/users",
			ownerToken, models.AddMemberRequest{UserID: target.ID})
		require.Equal(t, http.StatusNotFound, rec.Code)

		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Organisation not found", env.Message)
	})

	t.Run("nonexistent target user", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/organisations/"+orgID+"/users",
			ownerToken, models.AddMemberRequest{UserID: "no-such-user"})
		require.Equal(t, http.StatusNotFound, rec.Code)

		env := decodeEnvelope(t, rec)
		assert.Equal(t, "User not found", env.Message)
	})

	t.Run("success then duplicate conflict", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/organisations/"+orgID+"/users",
			ownerToken, models.AddMemberRequest{UserID: target.ID})
		require.Equal(t, http.StatusOK, rec.Code)

		env := decodeEnvelope(t, rec)
		assert.Equal(t, "User added to organisation successfully", env.Message)

		rec = doJSON(t, h, http.MethodPost, "/api/organisations/"+orgID+"/users",
			ownerToken, models.AddMemberRequest{UserID: target.ID})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("missing userId", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/organisations/"+orgID+"/users",
			ownerToken, models.AddMemberRequest{})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
