package onboarding

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/eproc-api/internal/application/enrichment"
	"github.com/jhoicas/eproc-api/internal/domain/entity"
	"github.com/jhoicas/eproc-api/pkg/brdoc"
	"github.com/jhoicas/eproc-api/pkg/logger"
)

// Draft borrador de alta de proveedor. Seguro para uso concurrente.
type Draft struct {
	mu       sync.Mutex
	id       string
	owner    string
	form     Form
	lookups  Lookups
	touched  time.Time
	closed   bool
	deps     *Dependencies
	debounce *Debouncer
	log      *logger.Logger

	// geocodificación: solo se aplica un resultado si su secuencia es la última emitida
	// y posterior a la última aplicada.
	baseCtx    context.Context
	geoIssued  uint64
	geoApplied uint64
	geoCancel  context.CancelFunc
}

func newDraft(baseCtx context.Context, id, owner string, deps *Dependencies, now time.Time) *Draft {
	return &Draft{
		id:       id,
		owner:    owner,
		form:     Form{Identity: Identity{PersonType: entity.PersonJuridica}},
		lookups:  Lookups{Postal: idleOutcome(), Registry: idleOutcome(), Geocode: idleOutcome()},
		touched:  now,
		deps:     deps,
		debounce: NewDebouncer(deps.Debounce),
		log:      deps.Log,
		baseCtx:  baseCtx,
	}
}

func idleOutcome() enrichment.Outcome {
	return enrichment.Outcome{Status: enrichment.StatusIdle}
}

// ID identificador del borrador.
func (d *Draft) ID() string { return d.id }

// Snapshot copia consistente del estado actual.
func (d *Draft) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

func (d *Draft) snapshotLocked() Snapshot {
	f := d.form
	if f.CNAE != nil {
		c := *f.CNAE
		f.CNAE = &c
	}
	f.Address = copyAddress(f.Address)
	return Snapshot{
		ID:      d.id,
		Form:    f,
		Lookups: d.lookups,
		EnrichmentUnavailable: d.lookups.Postal.Unavailable ||
			d.lookups.Registry.Unavailable ||
			d.lookups.Geocode.Unavailable,
		GeocodePending: d.debounce.Pending() || d.lookups.Geocode.Status == enrichment.StatusLoading,
	}
}

func copyAddress(a entity.Address) entity.Address {
	if c, ok := a.Coordinates(); ok {
		a.SetCoordinates(c)
	}
	return a
}

// SetIdentity aplica la edición de los datos de identificación.
func (d *Draft) SetIdentity(p IdentityPatch) Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	p.apply(&d.form.Identity)
	return d.snapshotLocked()
}

// SetAddress aplica la edición de la dirección. Si cambia algún campo vigilado y hay calle y ciudad,
// programa una geocodificación con debounce.
func (d *Draft) SetAddress(p AddressPatch) Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setAddressLocked(p.apply(d.form.Address))
	return d.snapshotLocked()
}

func (d *Draft) setAddressLocked(next entity.Address) {
	prev := d.form.Address
	d.form.Address = next
	if d.closed || !watchedChanged(prev, next) {
		return
	}
	if !next.Geocodable() {
		d.debounce.Cancel()
		d.abandonGeocodeLocked()
		return
	}
	d.debounce.Trigger(d.runGeocode)
}

// abandonGeocodeLocked invalida la geocodificación en curso; su resultado se descarta como obsoleto.
func (d *Draft) abandonGeocodeLocked() {
	d.geoIssued++
	if d.geoCancel != nil {
		d.geoCancel()
		d.geoCancel = nil
	}
	if d.lookups.Geocode.Status == enrichment.StatusLoading {
		d.lookups.Geocode = idleOutcome()
	}
}

// SelectCNAE guarda la actividad principal elegida en el buscador.
func (d *Draft) SelectCNAE(e entity.ClassificationEntry) Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	e.Activities = nil
	d.form.CNAE = &e
	return d.snapshotLocked()
}

// BlurPostalCode consulta el CEP actual y, si hay resultado, completa calle, barrio, ciudad y UF.
func (d *Draft) BlurPostalCode(ctx context.Context) Snapshot {
	d.mu.Lock()
	cep := d.form.Address.PostalCode
	if _, ok := brdoc.NormalizeCEP(cep); !ok {
		d.lookups.Postal = idleOutcome()
		defer d.mu.Unlock()
		return d.snapshotLocked()
	}
	d.lookups.Postal = enrichment.Outcome{Status: enrichment.StatusLoading}
	d.mu.Unlock()

	p, out := d.deps.Postal.Lookup(ctx, cep)

	d.mu.Lock()
	defer d.mu.Unlock()
	if out.Status == enrichment.StatusApplied && p != nil {
		next := d.form.Address
		enrichment.ApplyPostal(&next, p)
		d.setAddressLocked(next)
	}
	d.lookups.Postal = out
	return d.snapshotLocked()
}

// BlurDocument consulta el registro de CNPJ. Solo aplica a personas jurídicas con 14 dígitos.
// El resultado sobrescribe identidad, contacto, CNAE y dirección.
func (d *Draft) BlurDocument(ctx context.Context) Snapshot {
	d.mu.Lock()
	doc := d.form.Document
	if d.form.PersonType != entity.PersonJuridica {
		d.lookups.Registry = idleOutcome()
		defer d.mu.Unlock()
		return d.snapshotLocked()
	}
	if _, ok := brdoc.NormalizeCNPJ(doc); !ok {
		d.lookups.Registry = idleOutcome()
		defer d.mu.Unlock()
		return d.snapshotLocked()
	}
	d.lookups.Registry = enrichment.Outcome{Status: enrichment.StatusLoading}
	d.mu.Unlock()

	rec, out := d.deps.Registry.Lookup(ctx, doc)

	d.mu.Lock()
	defer d.mu.Unlock()
	if out.Status == enrichment.StatusApplied && rec != nil {
		d.applyRecordLocked(rec)
	}
	d.lookups.Registry = out
	return d.snapshotLocked()
}

func (d *Draft) applyRecordLocked(rec *entity.CompanyRecord) {
	f := &d.form
	f.Name = rec.LegalName
	f.TradeName = rec.TradeName
	f.Email = rec.Email
	f.Phone = rec.Phone
	if rec.CNAECode != "" {
		f.CNAE = &entity.ClassificationEntry{Code: rec.CNAECode, Description: rec.CNAEDesc}
	}
	next := f.Address
	next.PostalCode = brdoc.FormatCEP(rec.PostalCode)
	next.Street = rec.Street
	next.Number = rec.Number
	next.Neighborhood = rec.Neighborhood
	next.City = rec.City
	next.State = rec.State
	next.Complement = rec.Complement
	d.setAddressLocked(next)
}

// runGeocode lo invoca el debouncer. Cancela la geocodificación anterior en curso.
func (d *Draft) runGeocode() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.geoIssued++
	seq := d.geoIssued
	if d.geoCancel != nil {
		d.geoCancel()
	}
	ctx, cancel := context.WithTimeout(d.baseCtx, d.deps.GeocodeTimeout)
	d.geoCancel = cancel
	addr := copyAddress(d.form.Address)
	d.lookups.Geocode = enrichment.Outcome{Status: enrichment.StatusLoading}
	d.mu.Unlock()

	coords, out := d.deps.Geocoder.Locate(ctx, addr)
	cancel()

	d.mu.Lock()
	defer d.mu.Unlock()
	if seq != d.geoIssued || seq <= d.geoApplied {
		d.log.Debug().Str("draft", d.id).Uint64("seq", seq).Msg("resultado de geocodificación obsoleto descartado")
		return
	}
	d.geoApplied = seq
	d.geoCancel = nil
	if coords != nil {
		d.form.Address.SetCoordinates(*coords)
	}
	d.lookups.Geocode = out
}

// close detiene timers y cancela la geocodificación en curso.
func (d *Draft) close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	d.debounce.Stop()
	if d.geoCancel != nil {
		d.geoCancel()
		d.geoCancel = nil
	}
}

func (d *Draft) touch(now time.Time) {
	d.mu.Lock()
	d.touched = now
	d.mu.Unlock()
}

func (d *Draft) idleSince() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.touched
}

func (d *Draft) currentForm() Form {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked().Form
}
