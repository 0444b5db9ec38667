// Package addtocal wires link building, rendering and splicing into the two
// host entry points: OnRenderPage for event pages and OnBuildEmail for event
// workflow emails. Both always return usable content; failures leave the
// input untouched and are logged.
package addtocal
