package core_test

import (
	"testing"

	"modelregistry/testutil"
)

func TestCoreReachesBlobsThroughBlobPackage(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.Any(testutil.BlobBackendImportForbidden, testutil.SQLImportForbidden),
		"core opens backends via internal/blob and the persistence packages")
}
