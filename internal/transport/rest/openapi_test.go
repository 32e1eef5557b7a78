package rest

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "REST Transport Suite")
}

var _ = Describe("OpenAPI document", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()

		var err error
		doc, err = loader.LoadFromFile("../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())

		Expect(doc.Validate(loader.Context)).To(Succeed())
	})

	It("should document every route the router serves", func() {
		for _, path := range []string{
			"/auth/register",
			"/auth/login",
			"/auth/refresh-token",
			"/users/me",
			"/users/{id}/status",
			"/items",
			"/items/search",
			"/items/filter",
			"/items/assigned",
			"/items/assign",
			"/items/reassign",
			"/items/request",
			"/items/{id}",
			"/items/{id}/status",
			"/items/{id}/report",
		} {
			Expect(doc.Paths.Find(path)).NotTo(BeNil(), "missing path %s", path)
		}
	})

	It("should declare conflict responses on the assignment operations", func() {
		assign := doc.Paths.Find("/items/assign")
		Expect(assign).NotTo(BeNil())
		Expect(assign.Post.Responses.Status(409)).NotTo(BeNil())

		reassign := doc.Paths.Find("/items/reassign")
		Expect(reassign).NotTo(BeNil())
		Expect(reassign.Post.Responses.Status(409)).NotTo(BeNil())
	})
})
