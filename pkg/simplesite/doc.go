// Package simplesite provides the core library for a small marketing-site
// backend: blog posts with derived slugs and a publication lifecycle,
// newsletter subscribers, contact messages, site statistics and image uploads.
//
// The package follows a library-first design. A Service is assembled from
// pluggable components using functional options:
//
//	svc, err := simplesite.New(
//	    simplesite.WithRepository(memory.New()),
//	    simplesite.WithImageStore(memorystorage.New()),
//	    simplesite.WithMailer(simplesite.NewNoopMailer()),
//	)
//
// Persistence is abstracted behind Repository (in-memory and PostgreSQL
// implementations live under repo/), image blobs behind BlobStore (memory and
// S3 under storage/), and outbound email behind Mailer (Resend adapter under
// mail/resend).
//
// Slug assignment, publication stamping and read-time computation run as an
// explicit PrepareForSave pipeline on every post write, so the save semantics
// are testable without a live database.
package simplesite
