package circuits_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/circsim/internal/dynamo"
	"github.com/san-kum/circsim/internal/integrators"
)

func TestCircuits(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Circuits Suite")
}

func simulate(c dynamo.Circuit, dt, duration float32) *dynamo.Result {
	GinkgoHelper()
	res, err := integrators.NewEuler().Run(c, dynamo.Config{Dt: dt, Duration: duration})
	Expect(err).NotTo(HaveOccurred())
	return res
}
