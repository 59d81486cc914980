// Package driver implements file and folder operations on top of a
// core.Backend, addressed by canonical identifiers.
//
// Identifiers are absolute slash-separated strings. Folder identifiers end
// in "/" and the storage root is "/". Every operation canonicalizes the
// identifiers it receives, maps them onto backend paths below the entry
// path and translates backend failures into coded errors from the errors
// package.
//
// Usage:
//
//	backend, err := billy.NewLocal("/srv/fileadmin")
//	if err != nil {
//	    return err
//	}
//	d := driver.New(backend,
//	    driver.WithStorageID("fileadmin"),
//	    driver.WithLogger(logger),
//	)
//
//	folder, err := d.CreateFolder("reports", "/", false)
//	id, err := d.CreateFile("q1.txt", folder)
//	n, err := d.SetFileContents(id, []byte("revenue"))
//
// A driver can also be built from a configuration map:
//
//	d, err := driver.NewFromConfig(map[string]any{
//	    "type":       "local",
//	    "path":       "/srv/fileadmin",
//	    "storage_id": "fileadmin",
//	})
//
// # Error Handling
//
// Failures carry one of the codes errors.CodeNotFound, CodeInvalidName,
// CodeInvalidArgument, CodeExistingTarget or CodeOperationFailed, together
// with the operation, identifier and backend type as context. The backend
// cause stays reachable, so errors.Is(err, core.ErrNotExist) still works.
//
// RenameFolder is the exception: it never fails and reports a failed
// rename as a mapping of the folder to itself, so bulk callers can carry on.
//
// # Concurrency
//
// A Driver holds no locks. Operations that check before they act, such as
// RenameFile refusing an existing target or AddFile confirming its write,
// race with other writers of the same backend. Callers needing atomicity
// must serialize access themselves.
package driver
