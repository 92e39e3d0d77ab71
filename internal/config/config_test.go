package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseChannels(t *testing.T) {
	assert.Nil(t, parseChannels(""))
	assert.Equal(t, []int{1, 6, 11}, parseChannels("1,6,11"))
	assert.Equal(t, []int{1, 11}, parseChannels(" 1 , x , 11 "))
}
