package automation

//go:generate mockgen -destination "mock_util_test.go" -package $GOPACKAGE -write_package_comment=false github.com/celskeggs/vlauto/ctrl/util Runner
