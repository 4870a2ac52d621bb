// Package tests runs published conformance ROMs against the emulated
// machine. The ROM images are not distributed with the repository;
// place them under roms/ (see the paths in blargg_test.go) and the
// suites pick them up, skipping whatever is missing.
package tests

import (
	"os"
	"testing"
)

// TestTable is a collection of suites collected before execution, so
// that new suites slot in beside the existing ones.
type TestTable struct {
	testSuites []*TestSuite
}

// TestSuite is a group of collections, usually one per ROM author.
type TestSuite struct {
	name        string
	collections []*TestCollection
}

// TestCollection is a group of individual ROM tests.
type TestCollection struct {
	name  string
	tests []ROMTest
}

// ROMTest is a single runnable ROM.
type ROMTest interface {
	Run(t *testing.T)
	Name() string
}

func (t *TestTable) NewTestSuite(name string) *TestSuite {
	suite := &TestSuite{name: name}
	t.testSuites = append(t.testSuites, suite)
	return suite
}

func (t *TestSuite) NewTestCollection(name string) *TestCollection {
	collection := &TestCollection{name: name}
	t.collections = append(t.collections, collection)
	return collection
}

func (t *TestCollection) Add(test ROMTest) {
	t.tests = append(t.tests, test)
}

func Test_All(t *testing.T) {
	table := &TestTable{}
	testBlargg(t, table)

	for _, suite := range table.testSuites {
		suite := suite
		t.Run(suite.name, func(t *testing.T) {
			for _, collection := range suite.collections {
				collection := collection
				t.Run(collection.name, func(t *testing.T) {
					for _, test := range collection.tests {
						t.Run(test.Name(), test.Run)
					}
				})
			}
		})
	}
}

// loadROM reads a ROM image, skipping the test when the file is not
// present.
func loadROM(t *testing.T, path string) []byte {
	t.Helper()
	rom, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		t.Skipf("rom %s not present", path)
	}
	if err != nil {
		t.Fatal(err)
	}
	return rom
}
