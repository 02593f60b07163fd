package number

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestParse(t *testing.T) {
	data := map[string]string{
		"":      "0",
		"0":     "0",
		"12.9":  "12",
		"1e18":  "1000000000000000000",
		"00042": "42",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			n, err := Parse(k)
			assert.Equal(t, nil, err)
			assert.Equal(t, v, n.Dec(), "should truncate")
		})
	}

	for _, k := range []string{"-1", "1e80", "ten"} {
		t.Run(k, func(t *testing.T) {
			_, err := Parse(k)
			assert.NotEqual(t, nil, err)
		})
	}
}

func TestToDecimal(t *testing.T) {
	assert.Equal(t, "0", ToDecimal(nil).String())

	v := MustParse("115792089237316195423570985008687907853269984665640564039457584007913129639935")
	d := ToDecimal(v)
	back, err := FromDecimal(d)
	assert.Equal(t, nil, err)
	assert.Equal(t, v.Dec(), back.Dec())
}
