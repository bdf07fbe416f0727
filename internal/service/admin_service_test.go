package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	appErrors "github.com/scanmark/attendance-api/pkg/errors"
)

type fakeDeleter struct {
	attendanceWiped bool
	purged          bool
}

func (f *fakeDeleter) DeleteAll(ctx context.Context) error {
	f.attendanceWiped = true
	return nil
}

func (f *fakeDeleter) PurgeAll(ctx context.Context) error {
	f.purged = true
	return nil
}

func TestDeleteDataAttendanceScope(t *testing.T) {
	deleter := &fakeDeleter{}
	svc := NewAdminService(deleter, deleter, nil)

	message, err := svc.DeleteData(context.Background(), DeleteScopeAttendance)
	require.NoError(t, err)
	require.Equal(t, "Attendance records deleted", message)
	require.True(t, deleter.attendanceWiped)
	require.False(t, deleter.purged)
}

func TestDeleteDataAllScope(t *testing.T) {
	deleter := &fakeDeleter{}
	svc := NewAdminService(deleter, deleter, nil)

	message, err := svc.DeleteData(context.Background(), DeleteScopeAll)
	require.NoError(t, err)
	require.Equal(t, "Students and attendance deleted", message)
	require.True(t, deleter.purged)
	require.False(t, deleter.attendanceWiped)
}

func TestDeleteDataInvalidScope(t *testing.T) {
	deleter := &fakeDeleter{}
	svc := NewAdminService(deleter, deleter, nil)

	_, err := svc.DeleteData(context.Background(), "everything")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	require.False(t, deleter.attendanceWiped)
	require.False(t, deleter.purged)
}
