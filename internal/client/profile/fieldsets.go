package profile

import "time"

const (
	DestinationProfile = "/profile"
	DestinationLogin   = "/login"
)

// AddressFieldSet edits the postal address of the signed-in account.
func AddressFieldSet() FieldSet {
	return FieldSet{
		Name: "address",
		Fields: []Field{
			{Name: "address"},
			{Name: "apartment"},
			{Name: "city"},
			{Name: "state"},
			{Name: "country"},
			{Name: "zip"},
		},
		Rules: []Rule{RequireNonBlank("address")},

		SuccessMessage:     "Address updated successfully!",
		SuccessDelay:       1200 * time.Millisecond,
		SuccessDestination: DestinationProfile,
		CancelDestination:  DestinationProfile,
		LoginDestination:   DestinationLogin,

		Messages: map[Kind]string{
			KindEmptyRequiredField: "Address cannot be empty.",
			KindRemoteUpdateFailed: "Failed to update address.",
			KindUnexpectedFailure:  "Something went wrong.",
		},
	}
}

// CredentialFieldSet resets the account password. The user retypes the
// account email, which must match the identity key; only the new password is
// sent, and it never reaches the local cache.
func CredentialFieldSet() FieldSet {
	return FieldSet{
		Name: "credentials",
		Fields: []Field{
			{Name: "email", Transient: true},
			{Name: "password", Secret: true},
			{Name: "confirmPassword", Secret: true, Transient: true},
		},
		Rules: []Rule{
			RequirePresent("email", "password", "confirmPassword"),
			RequireMatch("password", "confirmPassword"),
		},
		ConfirmField: "email",

		SuccessMessage:     "Password reset successfully! Redirecting...",
		SuccessDelay:       1000 * time.Millisecond,
		SuccessDestination: DestinationLogin,
		CancelDestination:  DestinationLogin,
		LoginDestination:   DestinationLogin,

		Messages: map[Kind]string{
			KindEmptyRequiredField:     "All fields are required.",
			KindMismatchedConfirmation: "Passwords do not match.",
			KindIdentityNotFound:       "No account found with this email.",
			KindRemoteUpdateFailed:     "Failed to reset password. Please try again.",
			KindUnexpectedFailure:      "An unexpected error occurred. Please try again.",
		},
	}
}
