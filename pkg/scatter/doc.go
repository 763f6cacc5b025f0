/*
Package scatter provides content-generating features that model scattering
objects: point particles, elliptical disks, spheres and ellipsoids.

A scatterer produces a volume of voxels where each value is an occupancy
factor: how much of that voxel the object fills. The interpretation of the
value is left to whatever images the scatterer downstream. Radii and
positions are expressed in pixel units.

All scatterers append their output to the working frame list rather than
editing it, and operate on the list as a whole (not per frame), so a
repeated scatterer grows the list by one frame per copy.
*/
package scatter
