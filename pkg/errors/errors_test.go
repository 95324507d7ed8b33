package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/sheetdiff/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("sheet", "Coco Coco")
		assert.Equal(t, "sheet Coco Coco not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("sheet", "x")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "identity",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field identity: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid layout"}
		assert.Equal(t, "validation failed: invalid layout", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestConfigError(t *testing.T) {
	base := errors.New("bad time")
	err := pkgerrors.NewConfigError("now", "must be RFC 3339", base)
	assert.Contains(t, err.Error(), "now")
	assert.Contains(t, err.Error(), "must be RFC 3339")
	assert.ErrorIs(t, err, base)

	assert.NoError(t, pkgerrors.WrapConfig("now", nil))
	assert.ErrorIs(t, pkgerrors.WrapConfig("now", base), base)
}

func TestSheetError(t *testing.T) {
	t.Run("missing column", func(t *testing.T) {
		err := pkgerrors.NewMissingColumnError("in.xlsx", "Coco Coco", "Noel")
		assert.Equal(t, `sheet "Coco Coco" in in.xlsx, column "Noel": required column not found`, err.Error())
		assert.True(t, pkgerrors.IsMissingColumn(err))
	})

	t.Run("wrapped cause", func(t *testing.T) {
		cause := errors.New("sheet does not exist")
		err := pkgerrors.NewSheetError("in.xlsx", "B", "", cause)
		assert.Contains(t, err.Error(), "sheet does not exist")
		assert.ErrorIs(t, err, cause)
	})
}

func TestIOError(t *testing.T) {
	base := errors.New("permission denied")
	err := pkgerrors.NewIOError("write", "/tmp/out.xlsx", base)
	assert.Equal(t, "IO error during write of /tmp/out.xlsx: permission denied", err.Error())
	assert.Equal(t, base, err.Unwrap())

	noPath := &pkgerrors.IOError{Operation: "read", Message: "eof"}
	assert.Equal(t, "IO error during read: eof", noPath.Error())
}

func TestParseError(t *testing.T) {
	withFile := pkgerrors.NewParseError("yaml", "layout.yaml", "bad indent", nil)
	assert.Equal(t, "parse error in yaml file layout.yaml: bad indent", withFile.Error())

	noFile := pkgerrors.NewParseError("rfc3339", "", "bad value", nil)
	assert.Equal(t, "rfc3339 parse error: bad value", noFile.Error())
}

func TestWrapHelpers(t *testing.T) {
	base := errors.New("boom")

	assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	assert.NoError(t, pkgerrors.WrapParse("yaml", "x", nil))

	ioErr := pkgerrors.WrapIO("read", "x", base)
	var target *pkgerrors.IOError
	require.ErrorAs(t, ioErr, &target)
	assert.Equal(t, "read", target.Operation)

	parseErr := pkgerrors.WrapParse("yaml", "x", base)
	assert.ErrorIs(t, parseErr, base)
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		pkgerrors.ErrNotFound,
		pkgerrors.ErrInvalidInput,
		pkgerrors.ErrMissingColumn,
		pkgerrors.ErrEmptySheet,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}
