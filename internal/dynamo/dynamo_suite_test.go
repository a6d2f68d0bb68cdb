package dynamo_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestDynamoSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "dynamo driver contract suite")
}
