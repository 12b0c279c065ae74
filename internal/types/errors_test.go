package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/affe-lang/affe/internal/types"
)

func TestCheckError_MessagesIncludeOffendingTerms(t *testing.T) {
	a, b := &types.App{Con: "Int"}, &types.App{Con: "Bool"}
	err := types.NewTypeMismatchError(a, b)
	assert.Equal(t, types.TypeMismatchError, err.Kind)
	assert.Contains(t, err.Error(), "Int")
	assert.Contains(t, err.Error(), "Bool")
}

func TestCheckError_ArityMismatchCarriesCounts(t *testing.T) {
	err := types.NewArityMismatchError(2, 1)
	assert.Equal(t, 2, err.Expected)
	assert.Equal(t, 1, err.Actual)
}

func TestErrorList_JoinsMessages(t *testing.T) {
	list := types.ErrorList{
		types.NewUnknownNameError("x"),
		types.NewUnknownTypeError("T"),
	}
	msg := list.Error()
	assert.Contains(t, msg, "unknown name: x")
	assert.Contains(t, msg, "unknown type: T")
}
