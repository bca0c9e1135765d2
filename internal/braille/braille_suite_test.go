package braille_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestBraille(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Braille Suite")
}
