// Package upload stages file uploads for file and image form fields.
//
// The form engine is transport-free, so binary uploads never flow through
// it. Widgets POST the raw file to an HTTP endpoint backed by a Store, put
// the returned temp id into the field's value, and the host application
// claims the staged files after the form submits.
//
//  1. User picks a file in the widget.
//  2. Widget POSTs it to the mounted Handler.
//  3. Handler streams it to temp storage (disk or S3), returns temp_id
//  4. Widget sets the file field's value to the temp id string.
//  5. After a successful submit, the host calls upload.Claim (or
//     formflow.ClaimUploads for every file field at once) to turn temp
//     ids into Files.
//
// # Usage
//
// Mount the upload handler on your router:
//
//	r.Post("/upload", upload.Handler(uploadStore))
//
// # Security
//
// The upload handler enforces Config.AllowedTypes against a server-side detected MIME type
// (http.DetectContentType). Client-provided part headers like Content-Type are not trusted.
//
// For defense-in-depth, also consider:
//   - Restricting filename extensions via Config.AllowedExtensions
//   - Enforcing extension-to-type match via Config.RequireExtensionMatch
//   - Virus/malware scanning before making uploads available to end users
//
// Handle a staged file after the form submits:
//
//	err := eng.Submit(ctx)
//	if err != nil {
//	    return err
//	}
//
//	tempID, _ := eng.Value("attachment").(string)
//	if tempID != "" {
//	    file, err := upload.Claim(uploadStore, tempID)
//	    if err != nil {
//	        return err
//	    }
//	    defer file.Close()
//	    // Use file.Path, file.URL, or file.Reader.
//	}
package upload
