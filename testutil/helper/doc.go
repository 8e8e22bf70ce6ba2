// Package helper provides test doubles shared by the package tests of this module.
package helper
