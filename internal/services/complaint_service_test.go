package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Deepanshumelkani77/Grievance-system/internal/config"
	"github.com/Deepanshumelkani77/Grievance-system/internal/constants"
	"github.com/Deepanshumelkani77/Grievance-system/internal/dtos"
	"github.com/Deepanshumelkani77/Grievance-system/internal/models"
	"github.com/Deepanshumelkani77/Grievance-system/internal/services"
	"github.com/Deepanshumelkani77/Grievance-system/internal/utils"
)

type testEnv struct {
	svc        *services.ComplaintService
	users      *fakeUserRepo
	complaints *fakeComplaintRepo
	logs       *fakeLogRepo
	notifier   *fakeNotifier

	student   *models.User
	faculty   *models.User
	hodCS     *models.User
	hodMech   *models.User
	registrar *models.User
	warden    *models.User
	director  *models.User
}

func seedUser(t *testing.T, repo *fakeUserRepo, id, name, email string, role models.RoleType, department string) *models.User {
	t.Helper()
	u := &models.User{
		ID:         uuid.MustParse(id),
		Name:       name,
		Email:      email,
		Role:       role,
		Department: department,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := newFakeUserRepo()
	complaints := newFakeComplaintRepo()
	logs := newFakeLogRepo()
	notifier := &fakeNotifier{}

	env := &testEnv{
		users:      users,
		complaints: complaints,
		logs:       logs,
		notifier:   notifier,
	}
	env.student = seedUser(t, users, "00000000-0000-0000-0000-000000000001", "Asha Student", "asha@college.edu", models.RoleStudent, "Computer Science")
	env.faculty = seedUser(t, users, "00000000-0000-0000-0000-000000000002", "Farid Faculty", "farid@college.edu", models.RoleFaculty, "Mechanical")
	// hodCS sorts before hodMech by id.
	env.hodCS = seedUser(t, users, "10000000-0000-0000-0000-000000000001", "HOD CS", "hod.cse@college.edu", models.RoleHOD, "Computer Science")
	env.hodMech = seedUser(t, users, "20000000-0000-0000-0000-000000000001", "HOD Mech", "hod.mech@college.edu", models.RoleHOD, "Mechanical")
	env.registrar = seedUser(t, users, "30000000-0000-0000-0000-000000000001", "Registrar", "registrar@college.edu", models.RoleRegistrar, "Administration")
	env.warden = seedUser(t, users, "40000000-0000-0000-0000-000000000001", "Warden", "warden@college.edu", models.RoleWarden, "Hostel")
	env.director = seedUser(t, users, "50000000-0000-0000-0000-000000000001", "Director", "director@college.edu", models.RoleDirector, "Administration")

	cfg := &config.Config{OrganizationName: constants.OrganizationName}
	env.svc = services.NewComplaintService(
		cfg, complaints, logs, users,
		services.NewRoutingService(users),
		notifier,
	)
	return env
}

func (e *testEnv) submit(t *testing.T, submitter *models.User, category string) *models.Complaint {
	t.Helper()
	c, err := e.svc.Submit(context.Background(), submitter.ID, dtos.SubmitComplaintRequest{
		Title:       "Test complaint",
		Description: "Something went wrong",
		Category:    category,
	})
	require.NoError(t, err)
	require.NotNil(t, c)
	return c
}

func TestSubmitRoutesByCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := []struct {
		category string
		wantRole models.RoleType
	}{
		{"academic", models.RoleHOD},
		{"hostel", models.RoleWarden},
		{"staff", models.RoleRegistrar},
	}
	for _, tc := range cases {
		c := env.submit(t, env.student, tc.category)
		require.Equal(t, models.StatusPending, c.Status)
		require.NotNil(t, c.AssignedTo, "complaint should be routed for category %s", tc.category)

		assignee, err := env.users.GetByID(ctx, *c.AssignedTo)
		require.NoError(t, err)
		require.Equal(t, tc.wantRole, assignee.Role, "category %s routed to wrong role", tc.category)
	}
}

func TestSubmitPrefersDepartmentMatch(t *testing.T) {
	env := newTestEnv(t)

	// CS student routes to the CS HOD even though the Mech HOD exists.
	c := env.submit(t, env.student, "academic")
	require.Equal(t, env.hodCS.ID, *c.AssignedTo)

	// Mech faculty routes to the Mech HOD.
	c2 := env.submit(t, env.faculty, "academic")
	require.Equal(t, env.hodMech.ID, *c2.AssignedTo)
}

func TestSubmitRoutingDeterministicWithoutDepartmentMatch(t *testing.T) {
	env := newTestEnv(t)

	// Registrar's department matches neither HOD: lowest id wins, every time.
	submitter := seedUser(t, env.users, "00000000-0000-0000-0000-000000000009", "Zed", "zed@college.edu", models.RoleStudent, "Civil")
	for i := 0; i < 3; i++ {
		c := env.submit(t, submitter, "academic")
		require.Equal(t, env.hodCS.ID, *c.AssignedTo, "routing must be deterministic")
	}
}

func TestSubmitWithoutAuthorityProceedsUnassigned(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	users := newFakeUserRepo()
	student := seedUser(t, users, "00000000-0000-0000-0000-000000000001", "Solo", "solo@college.edu", models.RoleStudent, "CS")
	svc := services.NewComplaintService(
		&config.Config{}, env.complaints, env.logs, users,
		services.NewRoutingService(users),
		env.notifier,
	)

	c, err := svc.Submit(ctx, student.ID, dtos.SubmitComplaintRequest{
		Title:       "Orphan complaint",
		Description: "No warden exists",
		Category:    "hostel",
	})
	require.NoError(t, err, "submission must not fail when the role is unstaffed")
	require.Nil(t, c.AssignedTo)
	require.Equal(t, models.StatusPending, c.Status)

	logs := env.logs.forComplaint(c.ID)
	require.Len(t, logs, 1)
	require.Equal(t, models.ActionSubmitted, logs[0].Action)
	require.Nil(t, logs[0].AssignedTo)
}

func TestSubmitInvalidCategory(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Submit(context.Background(), env.student.ID, dtos.SubmitComplaintRequest{
		Title:       "Bad",
		Description: "Bad",
		Category:    "sports",
	})
	require.ErrorIs(t, err, utils.ErrInvalidCategory)
}

func TestAcceptGates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.submit(t, env.student, "academic")

	// Submitter roles cannot accept.
	_, err := env.svc.Accept(ctx, env.student.ID, env.student.Role, c.ID)
	require.ErrorIs(t, err, utils.ErrRoleNotPermitted)

	// A capable role that is not the assignee cannot accept.
	_, err = env.svc.Accept(ctx, env.registrar.ID, env.registrar.Role, c.ID)
	require.ErrorIs(t, err, utils.ErrNotAssignedAuthority)

	// The assignee can.
	updated, err := env.svc.Accept(ctx, env.hodCS.ID, env.hodCS.Role, c.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusAccepted, updated.Status)
	require.Equal(t, int64(2), updated.RowVersion)

	// Accepting twice is an invalid state.
	_, err = env.svc.Accept(ctx, env.hodCS.ID, env.hodCS.Role, c.ID)
	require.ErrorIs(t, err, utils.ErrWrongStatus)

	logs := env.logs.forComplaint(c.ID)
	require.Len(t, logs, 2, "failed attempts must not produce log entries")
	require.Equal(t, models.ActionAccepted, logs[1].Action)
	require.Equal(t, models.StatusPending, *logs[1].PreviousStatus)
	require.Equal(t, models.StatusAccepted, *logs[1].NewStatus)
}

func TestAcceptUnknownComplaint(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Accept(context.Background(), env.hodCS.ID, env.hodCS.Role, uuid.New())
	require.ErrorIs(t, err, utils.ErrComplaintNotFound)
}

func TestRejectIsTerminal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.submit(t, env.student, "staff")

	updated, err := env.svc.Reject(ctx, env.registrar.ID, env.registrar.Role, c.ID, "Duplicate of an existing complaint")
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, updated.Status)
	require.Equal(t, "Duplicate of an existing complaint", updated.Response)

	// Nothing moves a rejected complaint.
	_, err = env.svc.Accept(ctx, env.registrar.ID, env.registrar.Role, c.ID)
	require.ErrorIs(t, err, utils.ErrWrongStatus)
	_, err = env.svc.Resolve(ctx, env.registrar.ID, env.registrar.Role, c.ID, "late response")
	require.ErrorIs(t, err, utils.ErrWrongStatus)

	logs := env.logs.forComplaint(c.ID)
	require.Len(t, logs, 2)
	require.Equal(t, models.ActionRejected, logs[1].Action)
	require.Equal(t, "Duplicate of an existing complaint", logs[1].Remarks)
}

func TestRejectWithoutReasonUsesDefaultRemark(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.submit(t, env.student, "staff")

	updated, err := env.svc.Reject(ctx, env.registrar.ID, env.registrar.Role, c.ID, "")
	require.NoError(t, err)
	require.Empty(t, updated.Response)

	logs := env.logs.forComplaint(c.ID)
	require.Equal(t, "Complaint rejected by admin", logs[1].Remarks)
}

func TestResolveFromAccepted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.submit(t, env.student, "hostel")

	_, err := env.svc.Accept(ctx, env.warden.ID, env.warden.Role, c.ID)
	require.NoError(t, err)

	updated, err := env.svc.Resolve(ctx, env.warden.ID, env.warden.Role, c.ID, "Water supply restored")
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, updated.Status)
	require.Equal(t, "Water supply restored", updated.Response)

	logs := env.logs.forComplaint(c.ID)
	require.Equal(t, models.ActionResolved, logs[2].Action)
	require.Equal(t, models.StatusAccepted, *logs[2].PreviousStatus)
}

func TestResolveFromPendingIsInvalid(t *testing.T) {
	env := newTestEnv(t)
	c := env.submit(t, env.student, "hostel")
	_, err := env.svc.Resolve(context.Background(), env.warden.ID, env.warden.Role, c.ID, "done")
	require.ErrorIs(t, err, utils.ErrWrongStatus)
}

func TestDirectorResolvesAcceptedComplaint(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.submit(t, env.student, "academic")

	_, err := env.svc.Accept(ctx, env.hodCS.ID, env.hodCS.Role, c.ID)
	require.NoError(t, err)

	// The director may resolve without the complaint being escalated.
	resolved, err := env.svc.Resolve(ctx, env.director.ID, env.director.Role, c.ID, "Handled directly")
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, resolved.Status)

	logs := env.logs.forComplaint(c.ID)
	require.Equal(t, models.ActionResolved, logs[2].Action)
	require.Equal(t, env.director.ID, logs[2].PerformedBy)
}

func TestAssigneeResolvesEscalatedComplaint(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.submit(t, env.student, "staff")

	_, err := env.svc.Accept(ctx, env.registrar.ID, env.registrar.Role, c.ID)
	require.NoError(t, err)
	_, err = env.svc.Escalate(ctx, env.registrar.ID, env.registrar.Role, c.ID)
	require.NoError(t, err)

	// Escalation does not take the complaint away from its assignee.
	resolved, err := env.svc.Resolve(ctx, env.registrar.ID, env.registrar.Role, c.ID, "Sorted before the director got to it")
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, resolved.Status)

	logs := env.logs.forComplaint(c.ID)
	require.Equal(t, models.StatusEscalated, *logs[3].PreviousStatus)
}

func TestEscalateAndDirectorResolve(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.submit(t, env.student, "staff")

	_, err := env.svc.Accept(ctx, env.registrar.ID, env.registrar.Role, c.ID)
	require.NoError(t, err)

	escalated, err := env.svc.Escalate(ctx, env.registrar.ID, env.registrar.Role, c.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusEscalated, escalated.Status)
	require.Equal(t, env.director.ID, *escalated.EscalatedTo)

	// Escalation is one-shot.
	_, err = env.svc.Escalate(ctx, env.registrar.ID, env.registrar.Role, c.ID)
	require.ErrorIs(t, err, utils.ErrWrongStatus)

	// The director is told who escalated.
	require.NotNil(t, env.notifier.escalatedBy)
	require.Equal(t, env.registrar.ID, env.notifier.escalatedBy.ID)

	// An authority unrelated to the complaint cannot resolve it.
	_, err = env.svc.Resolve(ctx, env.hodCS.ID, env.hodCS.Role, c.ID, "trying anyway")
	require.ErrorIs(t, err, utils.ErrNotAssignedAuthority)

	// The director can.
	resolved, err := env.svc.Resolve(ctx, env.director.ID, env.director.Role, c.ID, "Reviewed and settled")
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, resolved.Status)

	logs := env.logs.forComplaint(c.ID)
	require.Equal(t, models.ActionEscalated, logs[2].Action)
	require.Equal(t, env.director.ID, *logs[2].EscalatedTo)
	require.Equal(t, models.StatusEscalated, *logs[3].PreviousStatus)
}

func TestEscalateRequiresDirector(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Rebuild the org without a director.
	users := newFakeUserRepo()
	student := seedUser(t, users, "00000000-0000-0000-0000-000000000001", "Asha", "asha@college.edu", models.RoleStudent, "CS")
	warden := seedUser(t, users, "40000000-0000-0000-0000-000000000001", "Warden", "warden@college.edu", models.RoleWarden, "Hostel")
	svc := services.NewComplaintService(
		&config.Config{}, env.complaints, env.logs, users,
		services.NewRoutingService(users),
		env.notifier,
	)

	c, err := svc.Submit(ctx, student.ID, dtos.SubmitComplaintRequest{
		Title: "Leaky roof", Description: "Rain inside", Category: "hostel",
	})
	require.NoError(t, err)
	_, err = svc.Accept(ctx, warden.ID, warden.Role, c.ID)
	require.NoError(t, err)

	_, err = svc.Escalate(ctx, warden.ID, warden.Role, c.ID)
	require.ErrorIs(t, err, utils.ErrDirectorNotFound)

	// A failed escalation leaves the complaint untouched.
	latest, err := env.complaints.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusAccepted, latest.Status)
	require.Nil(t, latest.EscalatedTo)
}

func TestDirectorCannotAcceptOrEscalate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.submit(t, env.student, "academic")

	_, err := env.svc.Accept(ctx, env.director.ID, env.director.Role, c.ID)
	require.ErrorIs(t, err, utils.ErrRoleNotPermitted)
	_, err = env.svc.Escalate(ctx, env.director.ID, env.director.Role, c.ID)
	require.ErrorIs(t, err, utils.ErrRoleNotPermitted)
}

func TestUpdateStatusOverrideIsAudited(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.submit(t, env.student, "academic")

	updated, err := env.svc.UpdateStatus(ctx, env.hodCS.ID, env.hodCS.Role, c.ID, dtos.UpdateStatusRequest{
		Status:   "In Progress",
		Response: utils.Ptr("Looking into it"),
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusInProgress, updated.Status)
	require.Equal(t, "Looking into it", updated.Response)

	logs := env.logs.forComplaint(c.ID)
	require.Len(t, logs, 2, "the override must land in the ledger")
	require.Equal(t, models.ActionStatusUpdated, logs[1].Action)
	require.Equal(t, models.StatusPending, *logs[1].PreviousStatus)
	require.Equal(t, models.StatusInProgress, *logs[1].NewStatus)
}

func TestUpdateStatusGates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.submit(t, env.student, "academic")

	_, err := env.svc.UpdateStatus(ctx, env.student.ID, env.student.Role, c.ID, dtos.UpdateStatusRequest{Status: "Resolved"})
	require.ErrorIs(t, err, utils.ErrRoleNotPermitted)

	_, err = env.svc.UpdateStatus(ctx, env.warden.ID, env.warden.Role, c.ID, dtos.UpdateStatusRequest{Status: "Resolved"})
	require.ErrorIs(t, err, utils.ErrNotAssignedAuthority)

	_, err = env.svc.UpdateStatus(ctx, env.hodCS.ID, env.hodCS.Role, c.ID, dtos.UpdateStatusRequest{Status: "Nonsense"})
	require.ErrorIs(t, err, utils.ErrInvalidStatus)
}

func TestDirectorOverridesUnescalatedComplaint(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.submit(t, env.student, "academic")

	// The director may override any complaint, escalated or not.
	updated, err := env.svc.UpdateStatus(ctx, env.director.ID, env.director.Role, c.ID, dtos.UpdateStatusRequest{
		Status: "In Progress",
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusInProgress, updated.Status)

	logs := env.logs.forComplaint(c.ID)
	require.Equal(t, models.ActionStatusUpdated, logs[1].Action)
	require.Equal(t, env.director.ID, logs[1].PerformedBy)
}

func TestUpdateStatusResponseOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.submit(t, env.student, "academic")

	updated, err := env.svc.UpdateStatus(ctx, env.hodCS.ID, env.hodCS.Role, c.ID, dtos.UpdateStatusRequest{
		Response: utils.Ptr("Interim note for the record"),
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, updated.Status, "status must be untouched when not supplied")
	require.Equal(t, "Interim note for the record", updated.Response)

	logs := env.logs.forComplaint(c.ID)
	require.Equal(t, models.ActionStatusUpdated, logs[1].Action)
	require.Equal(t, models.StatusPending, *logs[1].NewStatus)
}

func TestRowVersionConflictReturnsLatestSnapshot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.submit(t, env.student, "academic")

	// Another writer touches the row between the read and the update.
	env.complaints.conflictNextTransition = true

	_, err := env.svc.Accept(ctx, env.hodCS.ID, env.hodCS.Role, c.ID)
	require.Error(t, err)

	var conflict *utils.RowVersionConflictError
	require.ErrorAs(t, err, &conflict)
	require.NotNil(t, conflict.Current)
	require.Equal(t, c.ID, conflict.Current.ID)
	require.Equal(t, int64(2), conflict.Current.RowVersion)
}

func TestLogAppendFailureDoesNotFailTransition(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.submit(t, env.student, "academic")

	env.logs.failCreate = errors.New("ledger table on fire")
	updated, err := env.svc.Accept(ctx, env.hodCS.ID, env.hodCS.Role, c.ID)
	require.NoError(t, err, "a history write failure must not fail the transition")
	require.Equal(t, models.StatusAccepted, updated.Status)
}

func TestHistoryReconstruction(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.submit(t, env.student, "staff")

	_, err := env.svc.Accept(ctx, env.registrar.ID, env.registrar.Role, c.ID)
	require.NoError(t, err)
	_, err = env.svc.Escalate(ctx, env.registrar.ID, env.registrar.Role, c.ID)
	require.NoError(t, err)
	_, err = env.svc.Resolve(ctx, env.director.ID, env.director.Role, c.ID, "Settled")
	require.NoError(t, err)

	history, err := env.svc.ComplaintHistory(ctx, env.student.ID, env.student.Role, c.ID)
	require.NoError(t, err)
	require.Equal(t, 4, history.Count, "exactly one entry per workflow action")

	wantActions := []models.LogActionType{
		models.ActionSubmitted, models.ActionAccepted, models.ActionEscalated, models.ActionResolved,
	}
	var prev *models.ComplaintStatusType
	for i, entry := range history.Logs {
		require.Equal(t, wantActions[i], entry.Action)
		if i > 0 {
			require.True(t, entry.Timestamp.After(history.Logs[i-1].Timestamp), "entries must be chronological")
			// Each entry's previous status chains from the one before it.
			require.Equal(t, *prev, *entry.PreviousStatus)
		}
		prev = entry.NewStatus
	}
	require.Equal(t, models.StatusCompleted, *prev)
	require.Equal(t, models.StatusCompleted, history.Complaint.Status)
}

func TestHistoryAccessControl(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.submit(t, env.student, "academic")

	// Unrelated submitter cannot read it.
	_, err := env.svc.ComplaintHistory(ctx, env.faculty.ID, env.faculty.Role, c.ID)
	require.ErrorIs(t, err, utils.ErrNotAssignedAuthority)

	// Creator, assignee and director can.
	for _, u := range []*models.User{env.student, env.hodCS, env.director} {
		_, err := env.svc.ComplaintHistory(ctx, u.ID, u.Role, c.ID)
		require.NoError(t, err, "user %s should see the history", u.Name)
	}
}

func TestBackfill(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	customDate := time.Date(2022, 3, 15, 0, 0, 0, 0, time.UTC)
	c, err := env.svc.Backfill(ctx, env.registrar.ID, env.registrar.Role, dtos.BackfillComplaintRequest{
		Title:          "Broken window in records office",
		Description:    "Handled on paper before the portal existed",
		Category:       "staff",
		SubmitterName:  "Old Student",
		SubmitterEmail: "old.student@college.edu",
		CustomDate:     &customDate,
		Response:       utils.Ptr("Window replaced"),
	})
	require.NoError(t, err)
	require.Equal(t, customDate, c.CreatedAt)
	require.Equal(t, models.StatusCompleted, c.Status, "backfill defaults to Completed")
	require.Equal(t, env.registrar.ID, *c.AssignedTo)

	submitter, err := env.users.GetByEmail(ctx, "old.student@college.edu")
	require.NoError(t, err)
	require.NotNil(t, submitter, "unknown submitter must be created")
	require.Equal(t, models.RoleStudent, submitter.Role)
	require.Equal(t, constants.BackfillDepartment, submitter.Department)
	require.NotEmpty(t, submitter.PasswordHash)
	require.Equal(t, submitter.ID, c.CreatedBy)

	logs := env.logs.forComplaint(c.ID)
	require.Len(t, logs, 1)
	require.Equal(t, models.ActionManuallyAdded, logs[0].Action)
	require.Contains(t, logs[0].Remarks, env.registrar.Name)
	require.Contains(t, logs[0].Remarks, "2022-03-15")
	require.Equal(t, customDate, logs[0].Timestamp)
}

func TestBackfillReusesExistingSubmitter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	customDate := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	c, err := env.svc.Backfill(ctx, env.warden.ID, env.warden.Role, dtos.BackfillComplaintRequest{
		Title:          "Hostel mess issue",
		Description:    "Resolved last year",
		Category:       "hostel",
		SubmitterName:  "Ignored Name",
		SubmitterEmail: env.student.Email,
		CustomDate:     &customDate,
		Status:         utils.Ptr("Rejected"),
	})
	require.NoError(t, err)
	require.Equal(t, env.student.ID, c.CreatedBy, "existing account must be reused")
	require.Equal(t, models.StatusRejected, c.Status)
}

func TestBackfillRequiresCustomDate(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Backfill(context.Background(), env.registrar.ID, env.registrar.Role, dtos.BackfillComplaintRequest{
		Title:          "No date",
		Description:    "x",
		Category:       "staff",
		SubmitterName:  "A",
		SubmitterEmail: "a@college.edu",
	})
	require.ErrorIs(t, err, utils.ErrMissingFields)
}

func TestBackfillRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Backfill(context.Background(), env.hodCS.ID, env.hodCS.Role, dtos.BackfillComplaintRequest{
		Title:          "Bad status",
		Description:    "x",
		Category:       "academic",
		SubmitterName:  "A",
		SubmitterEmail: "a@college.edu",
		Status:         utils.Ptr("Archived"),
	})
	require.ErrorIs(t, err, utils.ErrInvalidStatus)
}

func TestBackfillRequiresAuthorityRole(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Backfill(context.Background(), env.student.ID, env.student.Role, dtos.BackfillComplaintRequest{
		Title: "x", Description: "x", Category: "staff",
		SubmitterName: "A", SubmitterEmail: "a@college.edu",
	})
	require.ErrorIs(t, err, utils.ErrRoleNotPermitted)
}

func TestListingScopes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	c1 := env.submit(t, env.student, "academic") // -> hodCS
	c2 := env.submit(t, env.faculty, "academic") // -> hodMech
	c3 := env.submit(t, env.student, "hostel")   // -> warden

	mine, err := env.svc.ListMine(ctx, env.student.ID)
	require.NoError(t, err)
	require.Equal(t, 2, mine.Count)
	// Newest first.
	require.Equal(t, c3.ID, mine.Complaints[0].ID)
	require.Equal(t, c1.ID, mine.Complaints[1].ID)
	require.Equal(t, env.student.Name, mine.Complaints[0].CreatedByName)

	assigned, err := env.svc.ListAssigned(ctx, env.hodMech.ID, env.hodMech.Role)
	require.NoError(t, err)
	require.Equal(t, 1, assigned.Count)
	require.Equal(t, c2.ID, assigned.Complaints[0].ID)

	_, err = env.svc.ListAssigned(ctx, env.student.ID, env.student.Role)
	require.ErrorIs(t, err, utils.ErrRoleNotPermitted)

	all, err := env.svc.ListAll(ctx, env.director.Role)
	require.NoError(t, err)
	require.Equal(t, 3, all.Count)

	_, err = env.svc.ListAll(ctx, env.hodCS.Role)
	require.ErrorIs(t, err, utils.ErrRoleNotPermitted)

	_, err = env.svc.ListAllLogs(ctx, env.registrar.Role)
	require.ErrorIs(t, err, utils.ErrRoleNotPermitted)

	allLogs, err := env.svc.ListAllLogs(ctx, env.director.Role)
	require.NoError(t, err)
	require.Equal(t, 3, allLogs.Count)
	// Newest first.
	require.Equal(t, c3.ID, allLogs.Logs[0].ComplaintID)
}

func TestNotificationsPerTransition(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.submit(t, env.student, "staff")

	_, err := env.svc.Accept(ctx, env.registrar.ID, env.registrar.Role, c.ID)
	require.NoError(t, err)
	_, err = env.svc.Escalate(ctx, env.registrar.ID, env.registrar.Role, c.ID)
	require.NoError(t, err)
	_, err = env.svc.Resolve(ctx, env.director.ID, env.director.Role, c.ID, "done")
	require.NoError(t, err)

	require.Equal(t, []string{"submitted", "accepted", "escalated", "resolved"}, env.notifier.events)
}
