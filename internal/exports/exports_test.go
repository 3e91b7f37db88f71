package exports

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugName(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("Parking_Comédie", SlugName("Parking/Comédie"))
	assert.Equal("Gare_Saint-Roch", SlugName("Gare Saint-Roch"))
	assert.Equal("a_b_c_d_e_f_g_", SlugName(`a/b\c:d?e*f"g'`))
}

func TestWriteEntitySeries(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	dir := t.TempDir()
	series := map[string]float64{
		"2026-01-05T10:00:00+01:00": 0.75,
		"2026-01-05T09:00:00+01:00": 0.50,
	}

	filename, err := WriteEntitySeries(dir, "parking", "Comédie", series)
	require.Nil(err)
	assert.Equal("parking_Comédie.json", filename)

	content, err := ioutil.ReadFile(filepath.Join(dir, filename))
	require.Nil(err)
	loaded := EntitySeries{}
	require.Nil(json.Unmarshal(content, &loaded))
	assert.Equal("Comédie", loaded.Title)
	require.Len(loaded.Points, 2)
	// points are chronological
	assert.Equal("2026-01-05T09:00:00+01:00", loaded.Points[0].Timestamp)
	assert.Equal(0.5, loaded.Points[0].Value)
	assert.Equal("2026-01-05T10:00:00+01:00", loaded.Points[1].Timestamp)
}

func TestWriteEntitySeriesEmpty(t *testing.T) {
	require := require.New(t)

	filename, err := WriteEntitySeries(t.TempDir(), "parking", "Comédie", nil)
	require.Nil(err)
	require.Equal("", filename)
}

func TestWriteCatalog(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "catalog.json")
	catalog := Catalog{
		Parkings: []CatalogEntry{
			{Name: "Comédie", Lat: 43.6085, Lon: 3.8795, Series: "series/parking_Comédie.json"},
		},
	}
	require.Nil(WriteCatalog(path, catalog))

	content, err := ioutil.ReadFile(path)
	require.Nil(err)
	loaded := Catalog{}
	require.Nil(json.Unmarshal(content, &loaded))
	require.Len(loaded.Parkings, 1)
	assert.Equal("Comédie", loaded.Parkings[0].Name)
	// empty sections marshal as arrays, not null
	assert.Contains(string(content), `"stations": []`)
}

func TestExportDaily(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	dir := t.TempDir()
	day1 := "date,heure,type,nom,libres,total,taux_occupation\n" +
		"2026-01-05,09:00:00,VILLE,VILLE,0,0,0.81\n" +
		"2026-01-05,09:00:00,PARKING,Comédie,60,240,0.75\n"
	day2 := "date,heure,type,nom,libres,total,taux_occupation\n" +
		"2026-01-06,09:00:00,PARKING,Comédie,120,240,0.5\n"
	require.Nil(ioutil.WriteFile(filepath.Join(dir, "jour_1_voiture.csv"), []byte(day1), 0644))
	require.Nil(ioutil.WriteFile(filepath.Join(dir, "jour_2_voiture.csv"), []byte(day2), 0644))
	// a velo file with the wrong suffix must be ignored
	require.Nil(ioutil.WriteFile(filepath.Join(dir, "jour_1_velo.csv"), []byte("date\n2026-01-05\n"), 0644))

	outPath := filepath.Join(dir, "export_voitures.json")
	require.Nil(ExportDaily(dir, "_voiture.csv", outPath))

	content, err := ioutil.ReadFile(outPath)
	require.Nil(err)
	records := []map[string]string{}
	require.Nil(json.Unmarshal(content, &records))
	require.Len(records, 3)
	assert.Equal("VILLE", records[0]["type"])
	assert.Equal("jour_1_voiture.csv", records[0]["fichier_source"])
	assert.Equal("jour_2_voiture.csv", records[2]["fichier_source"])
	assert.Equal("0.5", records[2]["taux_occupation"])
}

func TestExportDailyShortRows(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	dir := t.TempDir()
	relais := "date,heure,parking,relais_ok\n" +
		"2026-01-05,09:00:00,Comédie,1\n" +
		"2026-01-05,09:00:00,RESUME,0.5\n"
	require.Nil(ioutil.WriteFile(filepath.Join(dir, "jour_1_relais.csv"), []byte(relais), 0644))

	outPath := filepath.Join(dir, "export_relais.json")
	require.Nil(ExportDaily(dir, "_relais.csv", outPath))

	records := []map[string]string{}
	content, err := ioutil.ReadFile(outPath)
	require.Nil(err)
	require.Nil(json.Unmarshal(content, &records))
	require.Len(records, 2)
	assert.Equal("1", records[0]["relais_ok"])
	// the RESUME ratio row has no relais_ok column
	assert.Equal("RESUME", records[1]["parking"])
}

func TestExportDailyNoFiles(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	outPath := filepath.Join(dir, "export_voitures.json")
	require.Nil(ExportDaily(dir, "_voiture.csv", outPath))

	content, err := ioutil.ReadFile(outPath)
	require.Nil(err)
	require.Equal("[]", string(content))
}

func TestExportDailyMissingDir(t *testing.T) {
	require := require.New(t)

	err := ExportDaily(filepath.Join(os.TempDir(), "does-not-exist-relais"), "_voiture.csv", "out.json")
	require.Error(err)
}
