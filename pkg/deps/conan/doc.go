// Package conan extracts dependencies from Conan manifests.
//
// Both conanfile.txt and conanfile.py are scanned as text for inline
// references of the form `name/version@user/channel`. References without
// the `@` suffix are not reported.
package conan
