// Package domain models seismic-event bulletins in the Nordic format.
//
// # Data Source
//
// Bulletins ("Sfiles") are produced by Seisan-style network-processing
// software, one file per event. An upstream collector publishes each file's
// complete text as a single message on the Kafka source topic; the parser in
// internal/nordic folds the lines into the typed [Event] defined here.
//
// # Nordic Format Conventions
//
// Lines are fixed-width, 80 columns, ASCII. Column 80 (0-indexed 79) carries
// the record type, except for two suffix-marked records recognized over the
// line's trailing bytes ("EC3" explosion info, "MACRO3" macroseismic file
// reference). A blank type column means a phase/amplitude line.
//
// Two phase-line layouts exist:
//
//	Format 1 (legacy, Seisan < 12): single-character instrument and
//	component codes, amplitude at columns 34-40.
//	Format 2 (revised): three-character component, network/location codes,
//	and two context-dependent parameter columns (amplitude/period for
//	IA*/AM* phases, back-azimuth/apparent velocity for BAZ phases).
//
// Blank fixed-width columns mean "not recorded", which is different from a
// recorded zero; zero is a valid error estimate. Optional fields are
// therefore pointers throughout.
//
// # Units
//
//	depth, epicentral distance, location errors   km
//	origin-time error, residual, period           seconds
//	amplitude                                     nm
//	azimuth, back-azimuth, azimuthal gap          degrees
//	apparent velocity                             km/s
//
// # Derived Values
//
// Travel times ([Event.TravelTimes]) and network magnitudes
// ([MagnitudeEstimator]) are recomputed on demand from the stored arrival
// and amplitude records; nothing derived is persisted on the Event at parse
// time. The default magnitude formula is the regional ML relation from
// Kim (1998; "ML in Eastern North America").
//
// # ID Generation
//
// Event IDs are deterministic SHA-256 hashes of origin time, epicenter, and
// magnitude. This enables idempotent upserts downstream and replay safety
// without distributed coordination. See [EnrichEvent].
package domain
