package metrics

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestForwardedMessage(t *testing.T) {
	entry := logrus.NewEntry(logrus.StandardLogger())
	entry.Message = "minted tokens"
	assert.Equal(t, "minted tokens", forwardedMessage(entry))

	entry = entry.WithFields(logrus.Fields{
		"amount": 1000,
		"mint":   "mint",
	})
	entry.Message = "minted tokens"
	assert.Equal(t, `message="minted tokens", error=<nil>, data={"amount":1000,"mint":"mint"}`, forwardedMessage(entry))

	entry = entry.WithError(errors.New("ledger failure"))
	entry.Message = "ledger rejected mint"
	assert.Equal(t, `message="ledger rejected mint", error="ledger failure", data={"amount":1000,"mint":"mint"}`, forwardedMessage(entry))
}
