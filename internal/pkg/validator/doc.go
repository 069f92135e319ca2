// Package validator validates request and use-case input structs.
//
// Business code depends on the Validator interface; V10Validator implements
// it with go-playground/validator v10 and English messages.
package validator
